package config

import "os"

// Default endpoints and models per provider.
const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "google/gemini-2.5-flash-image"
	DefaultGeminiModel       = "gemini-2.5-flash-image"
)

// ProviderProfile is the provider configuration resolved once at startup.
// When APIKey is empty, Missing holds the message every request returns.
type ProviderProfile struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string

	// OpenRouter attribution headers.
	Referer string
	Title   string

	Missing string
}

// Configured reports whether the profile carries credentials.
func (p ProviderProfile) Configured() bool {
	return p.APIKey != "" && p.Missing == ""
}

func resolveProfile(name string, file *FileConfig) ProviderProfile {
	switch name {
	case ProviderGemini:
		p := ProviderProfile{
			Name:  ProviderGemini,
			Model: getEnvOrFile("IMAGE_MODEL", file.Model, DefaultGeminiModel),
		}
		p.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
		if p.APIKey == "" {
			p.Missing = "Missing GEMINI_API_KEY or GOOGLE_API_KEY. Add your Gemini key to the environment."
		}
		return p
	case ProviderOpenRouter:
		p := ProviderProfile{
			Name:    ProviderOpenRouter,
			Model:   getEnvOrFile("IMAGE_MODEL", file.Model, DefaultOpenRouterModel),
			BaseURL: getEnvOrFile("OPENROUTER_BASE_URL", file.OpenRouterBaseURL, DefaultOpenRouterBaseURL),
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Referer: os.Getenv("OPENROUTER_REFERER"),
			Title:   os.Getenv("OPENROUTER_TITLE"),
		}
		if p.APIKey == "" {
			p.Missing = "Missing OPENROUTER_API_KEY. Add your OpenRouter key to the environment."
		}
		return p
	default:
		return ProviderProfile{
			Name:    name,
			Missing: "Unknown PROVIDER " + name + ". Use openrouter or gemini.",
		}
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
