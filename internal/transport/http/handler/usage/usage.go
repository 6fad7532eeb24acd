// Package usage serves the read-only generation usage endpoints.
package usage

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mandalnilabja/memelab/internal/storage"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/shared"
)

const dateLayout = "2006-01-02"

// Handlers holds the dependencies for usage HTTP handlers.
type Handlers struct {
	Storage storage.Storage
	Logger  *slog.Logger
}

// New creates a new instance of usage handlers logging to slog.Default().
func New(store storage.Storage) *Handlers {
	return &Handlers{Storage: store, Logger: slog.Default()}
}

// storageFailed logs err and answers with a fixed message; storage errors
// never reach the caller.
func (h *Handlers) storageFailed(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.Logger.Error(message, "path", r.URL.Path, "error", err)
	shared.WriteJSONError(w, message, http.StatusInternalServerError)
}

// GetUsageStats handles GET /api/usage.
func (h *Handlers) GetUsageStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Storage.GetUsageStats(parseStatsFilter(r))
	if err != nil {
		h.storageFailed(w, r, "Failed to get usage stats.", err)
		return
	}

	shared.WriteJSON(w, stats, http.StatusOK)
}

// GetDailyUsage handles GET /api/usage/daily.
func (h *Handlers) GetDailyUsage(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	// Default to last 30 days if not specified
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -30).Format(dateLayout)
	}
	if endDate == "" {
		endDate = time.Now().Format(dateLayout)
	}

	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(dateLayout, d); err != nil {
			shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	usage, err := h.Storage.GetDailyUsage(startDate, endDate)
	if err != nil {
		h.storageFailed(w, r, "Failed to get daily usage.", err)
		return
	}
	if usage == nil {
		usage = []*storage.DailyUsage{}
	}

	shared.WriteJSON(w, map[string]any{
		"daily_usage": usage,
		"start_date":  startDate,
		"end_date":    endDate,
	}, http.StatusOK)
}

// GetGenerationLogs handles GET /api/usage/logs.
func (h *Handlers) GetGenerationLogs(w http.ResponseWriter, r *http.Request) {
	filter := parseLogFilter(r)

	logs, err := h.Storage.GetGenerationLogs(filter)
	if err != nil {
		h.storageFailed(w, r, "Failed to get generation logs.", err)
		return
	}
	if logs == nil {
		logs = []*storage.GenerationLog{}
	}

	shared.WriteJSON(w, map[string]any{
		"logs":   logs,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}, http.StatusOK)
}

// parseStatsFilter creates a StatsFilter from query parameters.
func parseStatsFilter(r *http.Request) storage.StatsFilter {
	filter := storage.StatsFilter{
		Provider:  r.URL.Query().Get("provider"),
		StartDate: parseDate(r.URL.Query().Get("start_date")),
		EndDate:   parseDate(r.URL.Query().Get("end_date")),
	}
	return filter
}

// parseLogFilter creates a LogFilter from query parameters.
func parseLogFilter(r *http.Request) storage.LogFilter {
	q := r.URL.Query()
	filter := storage.LogFilter{
		Provider:  q.Get("provider"),
		Model:     q.Get("model"),
		Outcome:   q.Get("outcome"),
		StartDate: parseDate(q.Get("start_date")),
		EndDate:   parseDate(q.Get("end_date")),
		Limit:     50, // default
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, 500)
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	return filter
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}
