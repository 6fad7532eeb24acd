// Package provider resolves the configured provider profile into the
// backend used by the generation service.
package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mandalnilabja/memelab/internal/config"
	"github.com/mandalnilabja/memelab/internal/imagegen"
)

// New builds the backend for profile. A profile without credentials yields a
// misconfigured backend rather than an error so the server still starts and
// every request reports the missing key.
func New(ctx context.Context, profile config.ProviderProfile, client *http.Client) (imagegen.Backend, error) {
	if !profile.Configured() {
		return imagegen.Misconfigured(profile.Missing), nil
	}

	build, ok := factories()[profile.Name]
	if !ok {
		return imagegen.Misconfigured("Unknown PROVIDER " + profile.Name + ". Use openrouter or gemini."), nil
	}

	p, err := build(ctx, profile, client)
	if err != nil {
		return imagegen.Backend{}, fmt.Errorf("init %s provider: %w", profile.Name, err)
	}
	return imagegen.Configured(p), nil
}
