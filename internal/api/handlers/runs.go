package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IvanArsenev/report-generator/internal/api/dto"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

// RunsHandler handles reconciliation run HTTP requests.
type RunsHandler struct {
	*Base
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{Base: NewBase(repo)}
}

// List handles GET /api/runs - returns recent reconciliation runs.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 20)

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RunListResponse{
		Runs:  make([]dto.RunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toRunResponse(run))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/runs/{id} - returns a single run by ID.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return
	}

	run, err := h.repo.GetRun(id)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	h.WriteJSON(w, http.StatusOK, toRunResponse(*run))
}

// Rows handles GET /api/runs/{id}/rows - returns a run's report rows.
func (h *RunsHandler) Rows(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("run ID is required"))
		return
	}

	run, err := h.repo.GetRun(id)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("run"))
		return
	}

	rows, err := h.repo.GetRunRows(id)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RowListResponse{
		RunID: id,
		Rows:  make([]dto.RowResponse, 0, len(rows)),
		Count: len(rows),
	}
	for _, row := range rows {
		response.Rows = append(response.Rows, toRowResponse(row))
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func toRunResponse(run storage.ReportRun) dto.RunResponse {
	return dto.RunResponse{
		ID:               run.ID,
		CreatedAt:        run.CreatedAt,
		AsOf:             run.AsOf,
		Tolerance:        run.Tolerance,
		ObligationCount:  run.ObligationCount,
		TransactionCount: run.TransactionCount,
		RowCount:         run.RowCount,
		Status:           run.Status,
		ErrorMessage:     run.ErrorMessage,
		ReportPath:       run.ReportPath,
		EmailedTo:        run.EmailedTo,
	}
}

func toRowResponse(row storage.ReportRow) dto.RowResponse {
	resp := dto.RowResponse{
		Position:    row.Position,
		Unit:        row.Unit,
		Kind:        row.Kind,
		Description: row.Description,
		Amount:      row.Amount,
		Expected:    row.Expected,
		Difference:  row.Difference,
		Debt:        row.Debt,
	}
	if row.TransactionDate != nil {
		resp.TransactionDate = row.TransactionDate.Format("2006-01-02")
	}
	return resp
}
