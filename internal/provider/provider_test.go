package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/memelab/internal/config"
	"github.com/mandalnilabja/memelab/internal/imagegen"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		profile   config.ProviderProfile
		wantReady bool
		wantName  string
		wantModel string
		wantMsg   string
	}{
		{
			name: "openrouter",
			profile: config.ProviderProfile{
				Name:   config.ProviderOpenRouter,
				APIKey: "sk-or",
				Model:  config.DefaultOpenRouterModel,
			},
			wantReady: true,
			wantName:  "openrouter",
			wantModel: config.DefaultOpenRouterModel,
		},
		{
			name: "gemini",
			profile: config.ProviderProfile{
				Name:   config.ProviderGemini,
				APIKey: "AIza-test",
				Model:  config.DefaultGeminiModel,
			},
			wantReady: true,
			wantName:  "gemini",
			wantModel: config.DefaultGeminiModel,
		},
		{
			name: "missing key",
			profile: config.ProviderProfile{
				Name:    config.ProviderOpenRouter,
				Missing: "Missing OPENROUTER_API_KEY. Add your OpenRouter key to the environment.",
			},
			wantMsg: "Missing OPENROUTER_API_KEY. Add your OpenRouter key to the environment.",
		},
		{
			name:    "unknown provider",
			profile: config.ProviderProfile{Name: "dalle", APIKey: "k"},
			wantMsg: "Unknown PROVIDER dalle. Use openrouter or gemini.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := New(context.Background(), tt.profile, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReady, backend.Ready())
			if tt.wantReady {
				assert.Equal(t, tt.wantName, backend.Provider.Name())
				assert.Equal(t, tt.wantModel, backend.Provider.Model())
				return
			}
			require.NotNil(t, backend.Misconfigured)
			assert.ErrorIs(t, backend.Misconfigured, imagegen.ErrServerMisconfigured)
			assert.Equal(t, tt.wantMsg, imagegen.PublicMessage(backend.Misconfigured))
		})
	}
}
