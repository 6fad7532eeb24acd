package usage

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/memelab/internal/storage"
)

type fakeStore struct {
	storage.Storage

	err        error
	logFilter  storage.LogFilter
	statFilter storage.StatsFilter
	start, end string
}

func (s *fakeStore) GetUsageStats(filter storage.StatsFilter) (*storage.UsageStats, error) {
	s.statFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return &storage.UsageStats{TotalRequests: 3, ErrorCount: 1}, nil
}

func (s *fakeStore) GetDailyUsage(start, end string) ([]*storage.DailyUsage, error) {
	s.start, s.end = start, end
	return nil, s.err
}

func (s *fakeStore) GetGenerationLogs(filter storage.LogFilter) ([]*storage.GenerationLog, error) {
	s.logFilter = filter
	return nil, s.err
}

func get(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetUsageStats(t *testing.T) {
	store := &fakeStore{}
	h := New(store)

	rec := get(h.GetUsageStats, "/api/usage?provider=gemini&start_date=2026-01-02&end_date=bogus")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_requests":3,"error_count":1,"total_duration_ms":0}`, rec.Body.String())

	assert.Equal(t, "gemini", store.statFilter.Provider)
	require.NotNil(t, store.statFilter.StartDate)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), *store.statFilter.StartDate)
	assert.Nil(t, store.statFilter.EndDate, "unparseable dates are ignored")
}

func TestStoreErrorsAreNotExposed(t *testing.T) {
	tests := []struct {
		name    string
		handler func(h *Handlers) http.HandlerFunc
		target  string
		want    string
	}{
		{"stats", func(h *Handlers) http.HandlerFunc { return h.GetUsageStats }, "/api/usage", "Failed to get usage stats."},
		{"daily", func(h *Handlers) http.HandlerFunc { return h.GetDailyUsage }, "/api/usage/daily", "Failed to get daily usage."},
		{"logs", func(h *Handlers) http.HandlerFunc { return h.GetGenerationLogs }, "/api/usage/logs", "Failed to get generation logs."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			h := New(&fakeStore{err: errors.New("open /var/lib/memelab/usage.db: disk I/O error")})
			h.Logger = slog.New(slog.NewTextHandler(&logs, nil))

			rec := get(tt.handler(h), tt.target)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "disk I/O")
			assert.Contains(t, logs.String(), "disk I/O error")
		})
	}
}

func TestGetDailyUsage(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		store := &fakeStore{}
		rec := get(New(store).GetDailyUsage, "/api/usage/daily?start_date=2026-03-01&end_date=2026-03-31")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"daily_usage":[],"start_date":"2026-03-01","end_date":"2026-03-31"}`, rec.Body.String())
		assert.Equal(t, "2026-03-01", store.start)
		assert.Equal(t, "2026-03-31", store.end)
	})

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		store := &fakeStore{}
		rec := get(New(store).GetDailyUsage, "/api/usage/daily")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Now().Format(dateLayout), store.end)
		assert.Equal(t, time.Now().AddDate(0, 0, -30).Format(dateLayout), store.start)
	})

	t.Run("rejects bad dates", func(t *testing.T) {
		rec := get(New(&fakeStore{}).GetDailyUsage, "/api/usage/daily?start_date=03/01/2026")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
	})
}

func TestGetGenerationLogs(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit", "?limit=10&offset=20", 10, 20},
		{"limit capped", "?limit=10000", 500, 0},
		{"garbage ignored", "?limit=-4&offset=x", 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			rec := get(New(store).GetGenerationLogs, "/api/usage/logs"+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			var body struct {
				Logs   []json.RawMessage `json:"logs"`
				Limit  int               `json:"limit"`
				Offset int               `json:"offset"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotNil(t, body.Logs)
			assert.Equal(t, tt.wantLimit, body.Limit)
			assert.Equal(t, tt.wantOffset, body.Offset)
			assert.Equal(t, tt.wantLimit, store.logFilter.Limit)
		})
	}
}

func TestParseLogFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/usage/logs?provider=openrouter&model=m&outcome=no_image_found", nil)
	f := parseLogFilter(r)
	assert.Equal(t, "openrouter", f.Provider)
	assert.Equal(t, "m", f.Model)
	assert.Equal(t, "no_image_found", f.Outcome)
}
