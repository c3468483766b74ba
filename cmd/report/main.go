package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IvanArsenev/report-generator/internal/adapters/mailer"
	"github.com/IvanArsenev/report-generator/internal/adapters/reportcsv"
	"github.com/IvanArsenev/report-generator/internal/application/reconcile"
	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/config"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/logging"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

func main() {
	// Parse flags
	var (
		configFile = flag.String("config", "", "Configuration file path")
		bankFile   = flag.String("bank", "", "Bank statement CSV (overrides config)")
		rentFile   = flag.String("rent", "", "Rent list CSV (overrides config)")
		tolerance  = flag.Int64("tolerance", -1, "Amount tolerance in rubles (-1 = use config)")
		asOfFlag   = flag.String("as-of", "", "Reconcile as of this date, YYYY-MM-DD (default: today)")
		email      = flag.String("email", "", "Send the report to this address (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logging
	logLevel := "info"
	if *verbose {
		logLevel = "debug"
	}
	logger := logging.NewLoggerWithSystem(config.LoggingConfig{Level: logLevel}, "reconcile")

	// Load configuration and apply flag overrides
	cfg := config.LoadOrEnv(*configFile, logger)
	if *bankFile != "" {
		cfg.BankFile = *bankFile
	}
	if *rentFile != "" {
		cfg.RentFile = *rentFile
	}
	if *tolerance >= 0 {
		cfg.Matching.Tolerance = *tolerance
	}
	if *email != "" {
		cfg.Email.Enabled = true
		cfg.Email.To = *email
	}

	now := time.Now
	if *asOfFlag != "" {
		asOf, err := time.Parse("2006-01-02", *asOfFlag)
		if err != nil {
			logger.Error("Invalid -as-of date", slog.String("value", *asOfFlag))
			os.Exit(1)
		}
		now = func() time.Time { return asOf }
	}

	// Initialize storage; an empty path disables run persistence
	var repo storage.Repository
	if cfg.Storage.DatabasePath != "" {
		store, err := storage.NewStorage(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		repo = store
	}

	var reportMailer reconcile.ReportMailer
	if cfg.Email.Enabled && cfg.Email.To != "" {
		reportMailer = mailer.New(cfg.Email, logger)
	}

	service := reconcile.NewService(reconcile.Options{
		Matching:   matcher.Config{Tolerance: cfg.Matching.Tolerance},
		Now:        now,
		Repository: repo,
		Sink:       &reportcsv.Writer{Dir: cfg.ReportsDir},
		Mailer:     reportMailer,
		Logger:     logger,
	})

	result, err := service.RunFiles(cfg.BankFile, cfg.RentFile)
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Report %s: %d obligations, %d transactions, %d rows\n",
		result.RunID, result.ObligationCount, result.TransactionCount, len(result.Report))
	if result.ReportPath != "" {
		fmt.Printf("Saved to %s\n", result.ReportPath)
	}
	if result.EmailedTo != "" {
		fmt.Printf("Sent to %s\n", result.EmailedTo)
	}
}
