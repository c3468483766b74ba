package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for report runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance backed by SQLite.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its rows in one transaction: either the whole
// report lands in the database or nothing does.
func (s *Storage) SaveRun(run *ReportRun, rows []ReportRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
	INSERT INTO report_runs
	(id, created_at, as_of, tolerance, obligation_count, transaction_count,
	 row_count, status, error_message, report_path, emailed_to)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt,
		run.AsOf,
		run.Tolerance,
		run.ObligationCount,
		run.TransactionCount,
		run.RowCount,
		run.Status,
		run.ErrorMessage,
		run.ReportPath,
		run.EmailedTo,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, row := range rows {
		_, err = tx.Exec(`
		INSERT INTO report_rows
		(run_id, position, unit, kind, transaction_date, description,
		 amount, expected, difference, debt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			row.Position,
			row.Unit,
			row.Kind,
			nullableTime(row.TransactionDate),
			row.Description,
			nullableInt(row.Amount),
			row.Expected,
			nullableInt(row.Difference),
			row.Debt,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert row %d of run %s: %w", row.Position, run.ID, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID. Returns nil when the run does not exist.
func (s *Storage) GetRun(id string) (*ReportRun, error) {
	row := s.db.QueryRow(`
	SELECT id, created_at, as_of, tolerance, obligation_count,
	       transaction_count, row_count, status, error_message,
	       report_path, emailed_to
	FROM report_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Storage) ListRuns(limit int) ([]ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
	SELECT id, created_at, as_of, tolerance, obligation_count,
	       transaction_count, row_count, status, error_message,
	       report_path, emailed_to
	FROM report_runs
	ORDER BY created_at DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRunRows returns the persisted report rows of a run in report order.
func (s *Storage) GetRunRows(runID string) ([]ReportRow, error) {
	rows, err := s.db.Query(`
	SELECT id, run_id, position, unit, kind, transaction_date, description,
	       amount, expected, difference, debt
	FROM report_rows
	WHERE run_id = ?
	ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReportRow
	for rows.Next() {
		var r ReportRow
		var txDate sql.NullTime
		var amount, difference sql.NullInt64
		err := rows.Scan(
			&r.ID, &r.RunID, &r.Position, &r.Unit, &r.Kind,
			&txDate, &r.Description, &amount, &r.Expected, &difference, &r.Debt,
		)
		if err != nil {
			return nil, err
		}
		if txDate.Valid {
			t := txDate.Time
			r.TransactionDate = &t
		}
		if amount.Valid {
			v := amount.Int64
			r.Amount = &v
		}
		if difference.Valid {
			v := difference.Int64
			r.Difference = &v
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetStats returns aggregate statistics over all runs.
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`
	SELECT COUNT(*),
	       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(row_count), 0)
	FROM report_runs`, RunStatusSuccess, RunStatusFailed).Scan(
		&stats.TotalRuns, &stats.SuccessCount, &stats.FailedCount, &stats.TotalRows,
	)
	if err != nil {
		return nil, err
	}

	// MAX(created_at) would come back untyped from the driver; select the
	// column itself so it scans as a time.
	var last time.Time
	err = s.db.QueryRow(`SELECT created_at FROM report_runs ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err == nil {
		stats.LastRunAt = &last
	}

	return stats, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*ReportRun, error) {
	var run ReportRun
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.AsOf, &run.Tolerance,
		&run.ObligationCount, &run.TransactionCount, &run.RowCount,
		&run.Status, &run.ErrorMessage, &run.ReportPath, &run.EmailedTo,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
