package http

import (
	"net/http"

	"github.com/Relancio/relancio/pkg/metrics"
)

// HealthHandler serves the liveness and metrics endpoints. Neither is rate
// limited: probes and scrapers call them on tight schedules.
type HealthHandler struct {
	metrics *metrics.Metrics
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(m *metrics.Metrics, version string) *HealthHandler {
	return &HealthHandler{metrics: m, version: version}
}

// RegisterRoutes registers the health and metrics routes
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.Handle("/metrics", h.metrics.Handler())
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", "validation_error", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
	})
}
