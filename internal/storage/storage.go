// Package storage records generation outcomes for the usage endpoints.
package storage

import (
	"github.com/mandalnilabja/memelab/internal/storage/models"
	"github.com/mandalnilabja/memelab/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	GenerationLog = models.GenerationLog
	LogFilter     = models.LogFilter
	DailyUsage    = models.DailyUsage
	ModelStats    = models.ModelStats
	UsageStats    = models.UsageStats
	StatsFilter   = models.StatsFilter
)

// Re-export errors from sqlite package
var (
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for the usage log.
type Storage interface {
	// Generation logging operations
	LogGeneration(log *models.GenerationLog) error
	GetGenerationLogs(filter models.LogFilter) ([]*models.GenerationLog, error)
	DeleteGenerationLogs(olderThan string) (int64, error)

	// Usage statistics operations
	GetUsageStats(filter models.StatsFilter) (*models.UsageStats, error)
	GetDailyUsage(startDate, endDate string) ([]*models.DailyUsage, error)
	UpdateDailyUsage(usage *models.DailyUsage) error

	// Maintenance operations
	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
