package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/IvanArsenev/report-generator/internal/api/dto"
	"github.com/IvanArsenev/report-generator/internal/application/reconcile"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
)

// Reconciler runs a reconciliation over the configured input files.
// Overrides are optional; nil keeps the configured tolerance and the
// current date.
type Reconciler interface {
	Reconcile(tolerance *int64, asOf *time.Time) (*reconcile.Result, error)
}

// ReconcileHandler triggers reconciliation runs over HTTP.
type ReconcileHandler struct {
	*Base
	reconciler Reconciler
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(reconciler Reconciler) *ReconcileHandler {
	return &ReconcileHandler{Base: NewBase(nil), reconciler: reconciler}
}

// Run handles POST /api/reconcile.
func (h *ReconcileHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
			return
		}
	}

	if req.Tolerance != nil && *req.Tolerance < 0 {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("tolerance must be non-negative"))
		return
	}

	var asOf *time.Time
	if req.AsOf != "" {
		t, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("as_of must be a YYYY-MM-DD date"))
			return
		}
		asOf = &t
	}

	result, err := h.reconciler.Reconcile(req.Tolerance, asOf)
	if err != nil {
		var malformed *rent.MalformedRowError
		if errors.As(err, &malformed) {
			h.WriteError(w, http.StatusUnprocessableEntity, dto.InvalidInputError(malformed.Error()))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.ReconcileResponse{
		RunID:            result.RunID,
		AsOf:             result.AsOf,
		ObligationCount:  result.ObligationCount,
		TransactionCount: result.TransactionCount,
		RowCount:         len(result.Report),
		ReportPath:       result.ReportPath,
		EmailedTo:        result.EmailedTo,
	})
}
