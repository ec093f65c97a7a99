package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aguspuryanto/medi-hospital-erp/internal/server"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Assemble the dashboard API
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize Dashboard API: %v", err)
	}

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatalf("Failed to start Dashboard API: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Dashboard API...")
	if err := srv.Stop(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
	logger.Info("Dashboard API stopped")
}
