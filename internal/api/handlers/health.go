package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/IvanArsenev/report-generator/internal/api/dto"
)

// HealthHandler answers health checks.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.HealthResponse{Status: "ok"})
}
