package dto

// ReconcileRequest optionally overrides run parameters. A nil Tolerance
// keeps the configured value; AsOf, when set, must be a YYYY-MM-DD date.
type ReconcileRequest struct {
	Tolerance *int64 `json:"tolerance,omitempty"`
	AsOf      string `json:"as_of,omitempty"`
}
