// Package reconcile orchestrates a full reconciliation run: obligations and
// the bank statement go in, an ordered payment report comes out.
//
// The run is atomic: either a complete report is produced (and optionally
// written, mailed and persisted) or the run fails before any output exists.
package reconcile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/IvanArsenev/report-generator/internal/adapters/tabular"
	"github.com/IvanArsenev/report-generator/internal/domain/accrual"
	"github.com/IvanArsenev/report-generator/internal/domain/ledger"
	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
	"github.com/IvanArsenev/report-generator/internal/domain/report"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

// ReportSink writes an assembled report somewhere durable and returns where
// it landed.
type ReportSink interface {
	Write(rows []report.Record, asOf time.Time) (path string, err error)
}

// ReportMailer delivers a written report file and returns the recipient.
type ReportMailer interface {
	SendReport(path string) (recipient string, err error)
}

// Options configures a reconciliation service. Repository, Sink and Mailer
// are all optional; a nil Now means wall-clock time.
type Options struct {
	Matching   matcher.Config
	Now        func() time.Time
	Repository storage.Repository
	Sink       ReportSink
	Mailer     ReportMailer
	Logger     *slog.Logger
}

// Service runs reconciliations.
type Service struct {
	matcher *matcher.Matcher
	now     func() time.Time
	repo    storage.Repository
	sink    ReportSink
	mailer  ReportMailer
	logger  *slog.Logger
}

// Result is the outcome of a successful run.
type Result struct {
	RunID            string
	AsOf             time.Time
	Report           []report.Record
	ObligationCount  int
	TransactionCount int
	ReportPath       string
	EmailedTo        string
}

// NewService creates a reconciliation service.
func NewService(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		matcher: matcher.NewMatcher(opts.Matching),
		now:     opts.Now,
		repo:    opts.Repository,
		sink:    opts.Sink,
		mailer:  opts.Mailer,
		logger:  opts.Logger,
	}
}

// RunFiles reads both input files and runs the reconciliation.
func (s *Service) RunFiles(bankPath, rentPath string) (*Result, error) {
	ledgerRows, err := tabular.ReadLedgerFile(bankPath)
	if err != nil {
		return nil, err
	}
	rentRows, err := tabular.ReadRentFile(rentPath)
	if err != nil {
		return nil, err
	}
	return s.Run(ledgerRows, rentRows)
}

// Run reconciles the raw rent rows against the raw ledger rows. Obligations
// are processed strictly in source order; the normalized transaction set is
// read-only throughout. For fixed inputs and a fixed clock the produced
// report is deterministic.
func (s *Service) Run(ledgerRows []tabular.LedgerRow, rentRows []tabular.RentRow) (*Result, error) {
	asOf := s.now()
	runID := uuid.NewString()

	// Obligations are strict: a malformed row fails the whole run before
	// any report output exists.
	obligations, err := rent.Load(rentRows)
	if err != nil {
		s.recordFailure(runID, asOf, err)
		return nil, fmt.Errorf("load obligations: %w", err)
	}

	transactions := ledger.Normalize(ledgerRows)
	s.logger.Info("Normalized bank statement",
		"raw_rows", len(ledgerRows),
		"transactions", len(transactions),
	)

	var rows []report.Record
	for _, ob := range obligations {
		matches := s.matcher.FindMatches(ob, transactions)
		debt := accrual.Debt(ob, matches, asOf)
		rows = append(rows, report.BuildRecords(ob, matches, debt)...)

		s.logger.Debug("Reconciled obligation",
			"unit", ob.Unit,
			"expected", ob.Expected,
			"matches", len(matches),
			"debt", debt,
		)
	}

	result := &Result{
		RunID:            runID,
		AsOf:             asOf,
		Report:           rows,
		ObligationCount:  len(obligations),
		TransactionCount: len(transactions),
	}

	if s.sink != nil {
		path, err := s.sink.Write(rows, asOf)
		if err != nil {
			s.recordFailure(runID, asOf, err)
			return nil, fmt.Errorf("write report: %w", err)
		}
		result.ReportPath = path
		s.logger.Info("Report written", "path", path, "rows", len(rows))
	}

	if s.mailer != nil && result.ReportPath != "" {
		recipient, err := s.mailer.SendReport(result.ReportPath)
		if err != nil {
			// Delivery failure does not invalidate the report itself.
			s.logger.Error("Failed to send report", "error", err.Error())
		} else {
			result.EmailedTo = recipient
			s.logger.Info("Report sent", "to", recipient)
		}
	}

	if err := s.persist(result); err != nil {
		s.logger.Error("Failed to persist run", "run_id", runID, "error", err.Error())
	}

	return result, nil
}

// Tolerance returns the amount tolerance the service matches with.
func (s *Service) Tolerance() int64 {
	return s.matcher.Tolerance()
}

func (s *Service) persist(result *Result) error {
	if s.repo == nil {
		return nil
	}

	run := &storage.ReportRun{
		ID:               result.RunID,
		CreatedAt:        result.AsOf,
		AsOf:             result.AsOf,
		Tolerance:        s.matcher.Tolerance(),
		ObligationCount:  result.ObligationCount,
		TransactionCount: result.TransactionCount,
		RowCount:         len(result.Report),
		Status:           storage.RunStatusSuccess,
		ReportPath:       result.ReportPath,
		EmailedTo:        result.EmailedTo,
	}

	rows := make([]storage.ReportRow, 0, len(result.Report))
	for i, rec := range result.Report {
		rows = append(rows, storage.ReportRow{
			RunID:           result.RunID,
			Position:        i,
			Unit:            rec.Unit,
			Kind:            rec.Kind.String(),
			TransactionDate: rec.TransactionDate,
			Description:     rec.Description,
			Amount:          rec.Amount,
			Expected:        rec.Expected,
			Difference:      rec.Difference,
			Debt:            rec.Debt,
		})
	}

	return s.repo.SaveRun(run, rows)
}

func (s *Service) recordFailure(runID string, asOf time.Time, cause error) {
	if s.repo == nil {
		return
	}
	run := &storage.ReportRun{
		ID:           runID,
		CreatedAt:    asOf,
		AsOf:         asOf,
		Tolerance:    s.matcher.Tolerance(),
		Status:       storage.RunStatusFailed,
		ErrorMessage: cause.Error(),
	}
	if err := s.repo.SaveRun(run, nil); err != nil {
		s.logger.Error("Failed to record failed run", "run_id", runID, "error", err.Error())
	}
}
