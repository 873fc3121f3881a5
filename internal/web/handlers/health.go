package handlers

import (
	"net/http"
)

const (
	healthStatusOK      = "ok"
	healthStatusHealthy = "healthy"
)

// HealthResponse is the probe payload.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthzHandler answers liveness probes: 200 whenever the process runs.
func (h *Handler) healthzHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
}

// readyzHandler answers readiness probes. The catalog is loaded before the
// server starts, so readiness reduces to having a non-empty catalog.
func (h *Handler) readyzHandler(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK
	response := HealthResponse{Status: healthStatusOK, Checks: checks}

	if len(h.items) > 0 {
		checks["catalog"] = healthStatusHealthy
	} else {
		checks["catalog"] = "unhealthy: catalog is empty"
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, response)
}
