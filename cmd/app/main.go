package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Shoxx1211/Mzansipass/docs"

	"github.com/Shoxx1211/Mzansipass/internal/advisory"
	"github.com/Shoxx1211/Mzansipass/internal/config"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/notify"
	"github.com/Shoxx1211/Mzansipass/internal/server"
)

// @title MzansiPass API
// @version 1.0
// @description Commuter wallet for South African public transport: trips, PRASA tickets, Bonsella loyalty and live transit advisories.
// @host localhost:8080
// @BasePath /
func main() {

	logger.Init()
	logger.Info("Starting MzansiPass application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	store := ledger.New(ledger.NewRand(cfg.DemoSeed))
	logger.Info("Ledger seeded", "user", store.User().FullName)

	advisorySvc := advisory.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	if cfg.GeminiAPIKey == "" {
		logger.Info("No Gemini API key configured, advisory runs on static fallback")
	}

	notifyService := notify.New(
		cfg.NotifyFrom,
		cfg.NotifyFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer notifyService.Close()
	logger.Info("Notification service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifyService.Start(ctx)

	watcher := advisory.NewWatcher(store, advisorySvc, 30*time.Second)
	go watcher.Start(ctx)

	srv := server.New(store, cfg, advisorySvc, watcher, notifyService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
