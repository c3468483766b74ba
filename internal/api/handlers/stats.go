package handlers

import (
	"net/http"

	"github.com/IvanArsenev/report-generator/internal/api/dto"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

// StatsHandler serves aggregate run statistics.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{Base: NewBase(repo)}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TotalRuns:    stats.TotalRuns,
		SuccessCount: stats.SuccessCount,
		FailedCount:  stats.FailedCount,
		TotalRows:    stats.TotalRows,
		LastRunAt:    stats.LastRunAt,
	})
}
