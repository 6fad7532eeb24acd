package models

import "time"

// DailyUsage represents aggregated generation counts for a day
type DailyUsage struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	RequestCount    int    `json:"request_count"`
	ErrorCount      int    `json:"error_count"`
	TotalDurationMs int64  `json:"total_duration_ms"`
}

// ModelStats represents usage statistics for a specific model
type ModelStats struct {
	Model           string `json:"model"`
	RequestCount    int    `json:"request_count"`
	ErrorCount      int    `json:"error_count"`
	TotalDurationMs int64  `json:"total_duration_ms"`
}

// UsageStats represents aggregated usage statistics
type UsageStats struct {
	TotalRequests   int                    `json:"total_requests"`
	ErrorCount      int                    `json:"error_count"`
	TotalDurationMs int64                  `json:"total_duration_ms"`
	ModelBreakdown  map[string]*ModelStats `json:"models,omitempty"`
}

// StatsFilter contains parameters for filtering usage statistics
type StatsFilter struct {
	Provider  string
	StartDate *time.Time
	EndDate   *time.Time
}
