// Package config loads service configuration from the environment, an
// optional .env file and an optional config.toml.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted by PROVIDER.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// Provider selects the deployment profile ("openrouter" or "gemini").
	Provider ProviderProfile

	// DefaultImagePath reads the default image from disk; empty uses the
	// image bundled into the binary.
	DefaultImagePath string

	// DefaultImageURL fetches the default image over HTTP instead.
	DefaultImageURL string

	// RemoteImageTTL is how long a fetched default image is cached.
	RemoteImageTTL time.Duration

	// AllowUpload lets callers send their own base photo.
	AllowUpload bool

	// DefaultPrompt replaces an empty prompt (localized deployments).
	DefaultPrompt string

	MaxPromptTokens          int
	MaxBodyBytes             int64
	ProviderTimeout          time.Duration
	MaxConcurrentGenerations int64

	// RateLimitRPS limits generate calls per client IP. 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  slog.Level
	LogFormat string

	// UsageDBPath is the SQLite file recording generation outcomes.
	// Empty disables the usage log.
	UsageDBPath string

	// UsageRetentionDays prunes older generation logs at startup. 0 keeps
	// everything.
	UsageRetentionDays int
}

// Load reads configuration from .env, file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	fileConfig, err := LoadFile()
	if err != nil {
		slog.Warn("ignoring unreadable config file", "path", ConfigPath(), "error", err)
		fileConfig = &FileConfig{}
	}

	providerName := strings.ToLower(getEnvOrFile("PROVIDER", fileConfig.Provider, ProviderOpenRouter))

	return &Config{
		ServerPort:               getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, ":8080"),
		Provider:                 resolveProfile(providerName, fileConfig),
		DefaultImagePath:         getEnvOrFile("DEFAULT_IMAGE_PATH", fileConfig.DefaultImagePath, ""),
		DefaultImageURL:          getEnvOrFile("DEFAULT_IMAGE_URL", fileConfig.DefaultImageURL, ""),
		RemoteImageTTL:           getEnvDurationOrFile("DEFAULT_IMAGE_TTL", fileConfig.DefaultImageTTL, 10*time.Minute),
		AllowUpload:              getEnvBoolOrFile("ALLOW_UPLOAD", fileConfig.AllowUpload, providerName == ProviderGemini),
		DefaultPrompt:            getEnvOrFile("DEFAULT_PROMPT", fileConfig.DefaultPrompt, ""),
		MaxPromptTokens:          getEnvIntOrFile("MAX_PROMPT_TOKENS", fileConfig.MaxPromptTokens, 0),
		MaxBodyBytes:             int64(getEnvIntOrFile("MAX_BODY_BYTES", fileConfig.MaxBodyBytes, 20<<20)),
		ProviderTimeout:          getEnvDurationOrFile("PROVIDER_TIMEOUT", fileConfig.ProviderTimeout, 120*time.Second),
		MaxConcurrentGenerations: int64(getEnvIntOrFile("MAX_CONCURRENT_GENERATIONS", fileConfig.MaxConcurrentGenerations, 4)),
		RateLimitRPS:             getEnvFloatOrFile("RATE_LIMIT_RPS", fileConfig.RateLimitRPS, 0),
		RateLimitBurst:           getEnvIntOrFile("RATE_LIMIT_BURST", fileConfig.RateLimitBurst, 5),
		LogLevel:                 parseLevel(getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info")),
		LogFormat:                strings.ToLower(getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, "text")),
		UsageDBPath:              usageDBPath(getEnvOrFile("USAGE_DB_PATH", fileConfig.UsageDBPath, DBPath())),
		UsageRetentionDays:       getEnvIntOrFile("USAGE_RETENTION_DAYS", fileConfig.UsageRetentionDays, 30),
	}
}

// usageDBPath maps "off" (or "none") to an empty path.
func usageDBPath(value string) string {
	switch strings.ToLower(value) {
	case "off", "none", "false":
		return ""
	}
	return value
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

func getEnvIntOrFile(key string, fileValue *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

func getEnvFloatOrFile(key string, fileValue *float64, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvDurationOrFile accepts Go durations ("90s") or plain seconds ("90").
func getEnvDurationOrFile(key, fileValue string, defaultValue time.Duration) time.Duration {
	for _, value := range []string{os.Getenv(key), fileValue} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}
