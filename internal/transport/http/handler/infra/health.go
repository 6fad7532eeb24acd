// Package infra serves health and status endpoints.
package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/memelab/internal/transport/http/handler/shared"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string `json:"status"`
	App         string `json:"app"`
	Profile     string `json:"profile"`
	Model       string `json:"model,omitempty"`
	Configured  bool   `json:"configured"`
	AllowUpload bool   `json:"allow_upload"`
	Uptime      string `json:"uptime"`
}

// HealthCheck handler returns the application health status.
// A missing provider key does not make the process unhealthy; it is
// reported through Configured.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, HealthResponse{
		Status:      "active",
		App:         h.Info.App,
		Profile:     h.Info.Profile,
		Model:       h.Info.Model,
		Configured:  h.Info.Ready,
		AllowUpload: h.Info.AllowUpload,
		Uptime:      time.Since(h.StartTime).Round(time.Second).String(),
	}, http.StatusOK)
}
