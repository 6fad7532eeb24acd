package storage

import (
	"errors"
	"time"
)

// Record stores one generation log entry and folds it into the daily usage
// aggregate.
func Record(s Storage, log *GenerationLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	errorCount := 0
	if log.StatusCode >= 400 {
		errorCount = 1
	}

	usage := &DailyUsage{
		Date:            log.CreatedAt.Format("2006-01-02"),
		Provider:        log.Provider,
		Model:           log.Model,
		RequestCount:    1,
		ErrorCount:      errorCount,
		TotalDurationMs: log.DurationMs,
	}

	return errors.Join(s.LogGeneration(log), s.UpdateDailyUsage(usage))
}

// Prune deletes generation logs older than days. Daily aggregates are kept.
func Prune(s Storage, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := now.UTC().AddDate(0, 0, -days).Format("2006-01-02")
	return s.DeleteGenerationLogs(cutoff)
}
