package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/application"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/config"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/database"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/events"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/handler"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/jobs"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/logger"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/middleware"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/repository"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-baydisplay")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-baydisplay",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.BookingModel{}, &repository.EventModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	eventRepo := repository.NewGormEventRepository(db)

	// Initialize application services
	messageService := application.NewMessageService(bookingRepo, producer, log)
	webhookService := application.NewWebhookService(bookingRepo, eventRepo, producer, log)

	// Start the retention sweep
	retention := jobs.NewRetentionJob(bookingRepo, eventRepo, cfg.RetentionDays, log)
	stopRetention, err := retention.Start()
	if err != nil {
		log.Fatal("failed to start retention job", zap.Error(err))
	}
	defer stopRetention()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-baydisplay")
	healthHandler.RegisterRoutes(router)

	// Register routes
	webhookHandler := handler.NewWebhookHandler(webhookService, log)
	webhookHandler.RegisterRoutes(&router.RouterGroup)

	displayHandler := handler.NewDisplayHandler(messageService, cfg.CourtAliases)
	displayHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-baydisplay...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-baydisplay stopped")
}
