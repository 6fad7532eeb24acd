package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TokenCounter counts prompt tokens for the prompt-size guard.
type TokenCounter interface {
	CountTokens(text string, model string) (int, error)
}

// NormalizerOptions tunes request normalization for a deployment profile.
type NormalizerOptions struct {
	// AllowUpload accepts imageBase64/mimeType from the caller. When false
	// the default image is always used.
	AllowUpload bool

	// DefaultPrompt replaces an empty prompt. Empty means DefaultPrompt
	// followed by SafetyInstruction.
	DefaultPrompt string

	// MaxPromptTokens rejects longer prompts. 0 disables the guard.
	MaxPromptTokens int

	// Model is passed to the token counter to pick an encoding.
	Model string
}

// Normalizer turns a raw request body into a GenerationRequest.
type Normalizer struct {
	source ImageSource
	tokens TokenCounter
	opts   NormalizerOptions
}

// NewNormalizer creates a Normalizer. tokens may be nil when the prompt guard
// is disabled.
func NewNormalizer(source ImageSource, tokens TokenCounter, opts NormalizerOptions) *Normalizer {
	return &Normalizer{
		source: source,
		tokens: tokens,
		opts:   opts,
	}
}

// Normalize validates body and resolves the prompt and image to send.
func (n *Normalizer) Normalize(ctx context.Context, body []byte) (*GenerationRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, InvalidRequest("Request body must be JSON.")
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, InvalidRequest("Field 'prompt' is required.")
	}
	prompt, ok := fields["prompt"].(string)
	if !ok {
		return nil, InvalidRequest("Field 'prompt' is required.")
	}

	if err := n.checkPromptSize(prompt); err != nil {
		return nil, err
	}

	req := &GenerationRequest{
		Prompt: BuildPrompt(prompt, n.opts.DefaultPrompt),
	}

	if n.opts.AllowUpload {
		data, _ := fields["imageBase64"].(string)
		mimeType, _ := fields["mimeType"].(string)
		if data != "" && mimeType != "" {
			req.Image = ImagePayload{Data: data, MIMEType: mimeType}
			return req, nil
		}
	}

	image, err := n.defaultImage(ctx)
	if err != nil {
		return nil, err
	}
	req.Image = image
	return req, nil
}

func (n *Normalizer) checkPromptSize(prompt string) error {
	if n.opts.MaxPromptTokens <= 0 || n.tokens == nil {
		return nil
	}
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return nil
	}
	// A tokenizer failure leaves the prompt unchecked.
	count, err := n.tokens.CountTokens(trimmed, n.opts.Model)
	if err != nil {
		return nil
	}
	if count > n.opts.MaxPromptTokens {
		return InvalidRequest(fmt.Sprintf("Field 'prompt' is too long (%d tokens, limit %d).", count, n.opts.MaxPromptTokens))
	}
	return nil
}

func (n *Normalizer) defaultImage(ctx context.Context) (ImagePayload, error) {
	if n.source == nil {
		return ImagePayload{}, UpstreamUnavailable("Default image was not available on the server.", nil)
	}
	image, err := n.source.Load(ctx)
	if err != nil {
		return ImagePayload{}, UpstreamUnavailable("Failed to read default image on server.", err)
	}
	if image.Data == "" {
		return ImagePayload{}, UpstreamUnavailable("Default image was not available on the server.", nil)
	}
	if image.MIMEType == "" {
		image.MIMEType = DefaultMIMEType
	}
	return image, nil
}
