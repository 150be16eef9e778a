package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "utility-bill-splitter/internal/api/http"
	"utility-bill-splitter/internal/config"
	"utility-bill-splitter/internal/logger"
	"utility-bill-splitter/internal/repository/postgres"
	"utility-bill-splitter/internal/security"
	"utility-bill-splitter/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Optional dotenv file loaded before the configuration")
	flag.Parse()

	// A missing .env is fine; values may come from the real environment.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Utility Bill Splitter...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("Failed to apply schema", "error", err)
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	activitySvc := service.NewActivityService(store.ActivityLogRepository)
	emailSvc := service.NewEmailService(cfg)
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.UserRepository, emailSvc)
	svc := httpapi.Services{
		Auth:  service.NewAuthService(store.UserRepository, tokenManager, activitySvc),
		Users: service.NewUserService(store.UserRepository, activitySvc),
		Groups: service.NewGroupService(
			store.GroupRepository,
			store.GroupMemberRepository,
			store.UserRepository,
			store.BillRepository,
			store.BillShareRepository,
			store.PaymentRepository,
			activitySvc,
		),
		Bills: service.NewBillService(
			store.BillRepository,
			store.BillShareRepository,
			store.PaymentRepository,
			store.GroupRepository,
			store.UserRepository,
			noteSvc,
			activitySvc,
		),
		Payments: service.NewPaymentService(
			store.PaymentRepository,
			store.BillRepository,
			store.UserRepository,
			noteSvc,
			activitySvc,
		),
		Notifications: noteSvc,
		Activity:      activitySvc,
		Admin: service.NewAdminService(
			store.UserRepository,
			store.GroupRepository,
			store.GroupMemberRepository,
			store.BillRepository,
			store.BillShareRepository,
			store.PaymentRepository,
			store.NotificationRepository,
			activitySvc,
		),
	}

	router, err := httpapi.NewRouter(svc, tokenManager, store)
	if err != nil {
		logger.Error("Failed to build router", "error", err)
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
