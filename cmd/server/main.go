package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/adapter/httpapi"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/adapter/ledger"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/adapter/repository/postgres"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/config"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/feed"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Setup database for the local time-override store
	db, err := postgres.NewDB(cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize adapters and services
	overrideStore := postgres.NewOverrideRepository(db)
	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, cfg.LedgerAPIToken, logger)
	feedService := feed.NewService(ledgerClient, overrideStore, logger)

	// First fetch; a cold upstream is not fatal, the scheduler retries
	if _, err := feedService.Refresh(ctx); err != nil {
		logger.Warnf("Initial refresh failed: %v", err)
	}

	// Schedule periodic full recomputes
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
		if _, err := feedService.Refresh(context.Background()); err != nil {
			logger.Warnf("Scheduled refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid refresh schedule %q: %v", cfg.RefreshSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start HTTP server
	handler := httpapi.NewHandler(feedService, overrideStore, logger)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(cfg.APIToken),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	waitForShutdown(server, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, logger *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Infof("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
	logger.Info("HTTP server stopped")
}
