package api

import (
	"log/slog"
	"time"

	"github.com/IvanArsenev/report-generator/internal/application/reconcile"
	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/config"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

// Runner is the production Reconciler: it builds a reconciliation service
// per request so that tolerance and as-of overrides apply to that run only.
type Runner struct {
	cfg    *config.Config
	repo   storage.Repository
	sink   reconcile.ReportSink
	logger *slog.Logger
}

// NewRunner creates a runner over the configured input files.
func NewRunner(cfg *config.Config, repo storage.Repository, sink reconcile.ReportSink, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, repo: repo, sink: sink, logger: logger}
}

// Reconcile runs a reconciliation over the configured bank and rent files.
func (r *Runner) Reconcile(tolerance *int64, asOf *time.Time) (*reconcile.Result, error) {
	matching := matcher.Config{Tolerance: r.cfg.Matching.Tolerance}
	if tolerance != nil {
		matching.Tolerance = *tolerance
	}

	var now func() time.Time
	if asOf != nil {
		t := *asOf
		now = func() time.Time { return t }
	}

	service := reconcile.NewService(reconcile.Options{
		Matching:   matching,
		Now:        now,
		Repository: r.repo,
		Sink:       r.sink,
		Logger:     r.logger,
	})

	return service.RunFiles(r.cfg.BankFile, r.cfg.RentFile)
}
