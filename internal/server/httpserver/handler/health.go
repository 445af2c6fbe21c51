package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/endpointauth-go/internal/infra/buildinfo"
)

// handleHealth handles GET /healthz.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.status("healthy"))
}

// handleReady handles GET /readyz.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.status("ready"))
}

func (h *Handler) status(s string) HealthStatus {
	return HealthStatus{
		Status:  s,
		Policy:  h.policy.String(),
		Version: buildinfo.Get().Version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	}
}
