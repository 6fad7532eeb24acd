package provider

import (
	"context"
	"net/http"

	"github.com/mandalnilabja/memelab/internal/config"
	"github.com/mandalnilabja/memelab/internal/imagegen"
	"github.com/mandalnilabja/memelab/internal/provider/gemini"
	"github.com/mandalnilabja/memelab/internal/provider/openrouter"
)

// factory builds a provider from a configured profile.
type factory func(ctx context.Context, profile config.ProviderProfile, client *http.Client) (imagegen.Provider, error)

// factories returns the constructors of all available image providers.
// The map key is the PROVIDER value that selects them.
func factories() map[string]factory {
	return map[string]factory{
		config.ProviderOpenRouter: newOpenRouter,
		config.ProviderGemini:     newGemini,
	}
}

func newOpenRouter(_ context.Context, profile config.ProviderProfile, client *http.Client) (imagegen.Provider, error) {
	return openrouter.New(openrouter.Options{
		APIKey:  profile.APIKey,
		BaseURL: profile.BaseURL,
		Model:   profile.Model,
		Referer: profile.Referer,
		Title:   profile.Title,
		Client:  client,
	}), nil
}

func newGemini(ctx context.Context, profile config.ProviderProfile, client *http.Client) (imagegen.Provider, error) {
	return gemini.New(ctx, profile.APIKey, profile.Model, client)
}
