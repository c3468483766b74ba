package storage

import (
	"time"
)

// Run statuses.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// ReportRun is one reconciliation run, successful or not. Failed runs carry
// an error message and no rows.
type ReportRun struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	AsOf             time.Time `json:"as_of"`
	Tolerance        int64     `json:"tolerance"`
	ObligationCount  int       `json:"obligation_count"`
	TransactionCount int       `json:"transaction_count"`
	RowCount         int       `json:"row_count"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	ReportPath       string    `json:"report_path,omitempty"`
	EmailedTo        string    `json:"emailed_to,omitempty"`
}

// ReportRow is one persisted row of a report. Position preserves report
// order; transaction fields are nil on no-payment rows.
type ReportRow struct {
	ID              int64      `json:"id"`
	RunID           string     `json:"run_id"`
	Position        int        `json:"position"`
	Unit            string     `json:"unit"`
	Kind            string     `json:"kind"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
	Description     string     `json:"description,omitempty"`
	Amount          *int64     `json:"amount,omitempty"`
	Expected        int64      `json:"expected"`
	Difference      *int64     `json:"difference,omitempty"`
	Debt            int64      `json:"debt"`
}

// Stats holds aggregate run statistics.
type Stats struct {
	TotalRuns    int        `json:"total_runs"`
	SuccessCount int        `json:"success_count"`
	FailedCount  int        `json:"failed_count"`
	TotalRows    int        `json:"total_rows"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
}
