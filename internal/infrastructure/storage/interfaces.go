package storage

// Repository defines the complete storage interface. It allows swapping
// implementations and makes testing with mocks straightforward.
type Repository interface {
	// SaveRun persists a run together with its report rows atomically.
	// Rows may be nil for failed runs.
	SaveRun(run *ReportRun, rows []ReportRow) error

	// GetRun retrieves a run by ID; nil when not found.
	GetRun(id string) (*ReportRun, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]ReportRun, error)

	// GetRunRows returns a run's report rows in report order.
	GetRunRows(runID string) ([]ReportRow, error)

	// GetStats returns aggregate statistics over all runs.
	GetStats() (*Stats, error)

	Close() error
}
