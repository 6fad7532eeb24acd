package sqlite

import "github.com/mandalnilabja/memelab/internal/storage/models"

// UpdateDailyUsage upserts daily usage data
func (s *Storage) UpdateDailyUsage(usage *models.DailyUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if usage.Date == "" || usage.Provider == "" {
		return ErrInvalidInput
	}

	_, err := s.db.Exec(`
		INSERT INTO usage_daily (date, provider, model, request_count, error_count, total_duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, provider, model) DO UPDATE SET
			request_count = request_count + excluded.request_count,
			error_count = error_count + excluded.error_count,
			total_duration_ms = total_duration_ms + excluded.total_duration_ms
	`, usage.Date, usage.Provider, usage.Model, usage.RequestCount, usage.ErrorCount, usage.TotalDurationMs)

	return err
}
