package repository_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the schema
// migrated. The shared-cache URI keeps the database alive across the
// pooled connections GORM opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&repository.BookingModel{}, &repository.EventModel{}))
	return db
}

// at parses "HH:MM" as a UTC instant on a fixed test day.
func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, fmt.Sprintf("2025-06-15T%s:00Z", hhmm))
	require.NoError(t, err)
	return ts
}

type seedInput struct {
	courtID    string
	startTime  string
	endTime    string
	customerID string
	cancelled  bool
	startShown bool
	endShown   bool
}

func seedBooking(t *testing.T, db *gorm.DB, id string, in seedInput) {
	t.Helper()
	courtID := in.courtID
	if courtID == "" {
		courtID = "2068"
	}
	customerID := in.customerID
	if customerID == "" {
		customerID = "cust-1"
	}
	now := time.Now().UTC()
	model := repository.BookingModel{
		ID:                   id,
		CourtID:              courtID,
		CourtName:            "Bay 1",
		StartTime:            at(t, in.startTime),
		EndTime:              at(t, in.endTime),
		CustomerID:           customerID,
		UserID:               "user-1",
		Email:                "test@test.com",
		FirstName:            "Test",
		LastName:             "User",
		IssuerID:             "issuer-1",
		Cancelled:            in.cancelled,
		HasShownStartMessage: in.startShown,
		HasShownEndMessage:   in.endShown,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, db.Create(&model).Error)
}
