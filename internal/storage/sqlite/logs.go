package sqlite

import (
	"fmt"
	"time"

	"github.com/mandalnilabja/memelab/internal/storage/models"
)

// LogGeneration stores a generation log entry
func (s *Storage) LogGeneration(log *models.GenerationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.Provider == "" || log.Outcome == "" {
		return ErrInvalidInput
	}
	if log.ID == "" {
		log.ID = generateID("gen")
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO generation_logs (id, request_id, provider, model, outcome,
			status_code, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Provider, log.Model, log.Outcome,
		log.StatusCode, nullString(log.ErrorMessage), log.DurationMs, log.CreatedAt)

	return err
}

// GetGenerationLogs retrieves generation logs with filtering, newest first
func (s *Storage) GetGenerationLogs(filter models.LogFilter) ([]*models.GenerationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, request_id, provider, model, outcome,
		status_code, COALESCE(error_message, ''), duration_ms, created_at
		FROM generation_logs WHERE 1=1`

	var args []any

	if filter.Provider != "" {
		query += " AND provider = ?"
		args = append(args, filter.Provider)
	}
	if filter.Model != "" {
		query += " AND model = ?"
		args = append(args, filter.Model)
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filter.Outcome)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.GenerationLog
	for rows.Next() {
		var log models.GenerationLog
		err := rows.Scan(&log.ID, &log.RequestID, &log.Provider, &log.Model, &log.Outcome,
			&log.StatusCode, &log.ErrorMessage, &log.DurationMs, &log.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// DeleteGenerationLogs removes logs older than the specified date (YYYY-MM-DD)
func (s *Storage) DeleteGenerationLogs(olderThan string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM generation_logs WHERE DATE(created_at) < ?", olderThan)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
