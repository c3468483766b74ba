package dto

import (
	"time"
)

// RunResponse is one reconciliation run as returned by the API.
type RunResponse struct {
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

// RunListResponse wraps a list of runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

// RowResponse is one report row as returned by the API.
type RowResponse struct {
	Position        int    `json:"position"`
	Unit            string `json:"unit"`
	Kind            string `json:"kind"`
	TransactionDate string `json:"transaction_date,omitempty"`
	Description     string `json:"description,omitempty"`
	Amount          *int64 `json:"amount,omitempty"`
	Expected        int64  `json:"expected"`
	Difference      *int64 `json:"difference,omitempty"`
	Debt            int64  `json:"debt"`
}

// RowListResponse wraps the rows of one run.
type RowListResponse struct {
	RunID string        `json:"run_id"`
	Rows  []RowResponse `json:"rows"`
	Count int           `json:"count"`
}

// ReconcileResponse summarizes a run triggered through the API.
type ReconcileResponse struct {
	RunID            string    `json:"run_id"`
	AsOf             time.Time `json:"as_of"`
	ObligationCount  int       `json:"obligation_count"`
	TransactionCount int       `json:"transaction_count"`
	RowCount         int       `json:"row_count"`
	ReportPath       string    `json:"report_path,omitempty"`
	EmailedTo        string    `json:"emailed_to,omitempty"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse carries aggregate run statistics.
type StatsResponse struct {
	TotalRuns    int        `json:"total_runs"`
	SuccessCount int        `json:"success_count"`
	FailedCount  int        `json:"failed_count"`
	TotalRows    int        `json:"total_rows"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
}
