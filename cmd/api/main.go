package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IvanArsenev/report-generator/internal/adapters/reportcsv"
	"github.com/IvanArsenev/report-generator/internal/api"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/config"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/logging"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file path")
		port       = flag.Int("port", 0, "Listen port (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logLevel := "info"
	if *verbose {
		logLevel = "debug"
	}
	logger := logging.NewLoggerWithSystem(config.LoggingConfig{Level: logLevel}, "api")

	cfg := config.LoadOrEnv(*configFile, logger)
	if *port != 0 {
		cfg.API.Port = *port
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	sink := &reportcsv.Writer{Dir: cfg.ReportsDir}
	runner := api.NewRunner(cfg, store, sink, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}, store, runner, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := server.Start(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
