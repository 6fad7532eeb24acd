package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort string `toml:"server_port"`
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`

	OpenRouterBaseURL string `toml:"openrouter_base_url"`

	DefaultImagePath string `toml:"default_image_path"`
	DefaultImageURL  string `toml:"default_image_url"`
	DefaultImageTTL  string `toml:"default_image_ttl"`
	AllowUpload      *bool  `toml:"allow_upload"`
	DefaultPrompt    string `toml:"default_prompt"`

	MaxPromptTokens          *int     `toml:"max_prompt_tokens"`
	MaxBodyBytes             *int     `toml:"max_body_bytes"`
	ProviderTimeout          string   `toml:"provider_timeout"`
	MaxConcurrentGenerations *int     `toml:"max_concurrent_generations"`
	RateLimitRPS             *float64 `toml:"rate_limit_rps"`
	RateLimitBurst           *int     `toml:"rate_limit_burst"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	UsageDBPath        string `toml:"usage_db_path"`
	UsageRetentionDays *int   `toml:"usage_retention_days"`
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	cfg := &FileConfig{}

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
