package models

import "time"

// GenerationLog records the outcome of one generate call. Prompts and images
// are never stored.
type GenerationLog struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Outcome      string    `json:"outcome"` // "ok" or an error kind
	StatusCode   int       `json:"status_code"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogFilter contains parameters for filtering generation logs
type LogFilter struct {
	Provider  string
	Model     string
	Outcome   string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
