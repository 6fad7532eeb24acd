package infra

import "time"

// Info describes the running deployment for the status endpoints.
type Info struct {
	App         string
	Profile     string // "openrouter", "gemini"
	Model       string
	Ready       bool // provider credentials present
	AllowUpload bool
}

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	Info      Info
	StartTime time.Time
}

// New creates a new instance of infrastructure handlers.
func New(info Info, startTime time.Time) *Handlers {
	return &Handlers{
		Info:      info,
		StartTime: startTime,
	}
}
