package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL renders the config as a database URL for the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// ServiceConfig holds all configuration for the bay display service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	DBConfig      DatabaseConfig
	KafkaBrokers  []string
	CourtAliases  map[string]string
	RetentionDays int
}

// defaultCourtAliases maps short display-unit numbers to Matchi court
// identifiers. Overridable via BAYDISPLAY_COURT_ALIASES ("1=2068,2=2069").
var defaultCourtAliases = map[string]string{
	"1": "2068",
	"2": "2069",
	"3": "2074",
	"4": "2071",
	"5": "2072",
	"6": "2070",
	"7": "2076",
	"8": "2077",
}

// Load reads configuration from BAYDISPLAY_-prefixed environment
// variables, applying defaults suitable for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BAYDISPLAY")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "baydisplay")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("COURT_ALIASES", "")
	v.SetDefault("RETENTION_DAYS", 90)

	cfg := &ServiceConfig{
		Port:   ":" + strings.TrimPrefix(v.GetString("SERVICE_PORT"), ":"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaBrokers:  strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		CourtAliases:  parseCourtAliases(v.GetString("COURT_ALIASES")),
		RetentionDays: v.GetInt("RETENTION_DAYS"),
	}

	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention days must be positive, got %d", cfg.RetentionDays)
	}

	return cfg, nil
}

func parseCourtAliases(raw string) map[string]string {
	if raw == "" {
		return defaultCourtAliases
	}
	aliases := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			aliases[parts[0]] = parts[1]
		}
	}
	return aliases
}
