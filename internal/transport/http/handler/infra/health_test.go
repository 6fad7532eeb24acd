package infra

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name string
		info Info
	}{
		{"configured", Info{App: "memelab", Profile: "gemini", Model: "gemini-2.5-flash-image", Ready: true, AllowUpload: true}},
		{"missing key stays healthy", Info{App: "memelab", Profile: "openrouter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.info, time.Now().Add(-90*time.Second))
			rec := httptest.NewRecorder()
			h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "active", body.Status)
			assert.Equal(t, tt.info.App, body.App)
			assert.Equal(t, tt.info.Profile, body.Profile)
			assert.Equal(t, tt.info.Model, body.Model)
			assert.Equal(t, tt.info.Ready, body.Configured)
			assert.Equal(t, tt.info.AllowUpload, body.AllowUpload)
			assert.Equal(t, "1m30s", body.Uptime)
		})
	}
}
