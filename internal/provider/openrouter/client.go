// Package openrouter implements the OpenRouter image provider.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mandalnilabja/memelab/internal/imagegen"
	"github.com/mandalnilabja/memelab/internal/types"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// maxErrorBody caps how much of a failed response is read.
	maxErrorBody = 64 << 10

	// maxResponseBody caps a successful response; inline images are large.
	maxResponseBody = 64 << 20
)

// Options configures a Provider.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string // sent as HTTP-Referer when set
	Title   string // sent as X-Title when set

	Client *http.Client
}

// Provider implements imagegen.Provider for OpenRouter's chat completions API.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	referer string
	title   string
	client  *http.Client
}

// New creates a new OpenRouter provider instance.
func New(opts Options) *Provider {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{
		apiKey:  opts.APIKey,
		baseURL: baseURL,
		model:   opts.Model,
		referer: opts.Referer,
		title:   opts.Title,
		client:  client,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "openrouter"
}

// Model returns the model requested from OpenRouter.
func (p *Provider) Model() string {
	return p.model
}

// BaseURL returns the chat completions endpoint.
func (p *Provider) BaseURL() string {
	return p.baseURL + "/chat/completions"
}

// PrepareRequest adds authorization and the optional attribution headers.
func (p *Provider) PrepareRequest(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if p.referer != "" {
		req.Header.Set("HTTP-Referer", p.referer)
	}
	if p.title != "" {
		req.Header.Set("X-Title", p.title)
	}
}

// Generate sends the prompt and base image as one user message and extracts
// the returned image.
func (p *Provider) Generate(ctx context.Context, req *imagegen.GenerationRequest) (*imagegen.GenerationResult, error) {
	resp, err := p.complete(ctx, req)
	if err != nil {
		return nil, imagegen.UpstreamError("Failed to process image with OpenRouter", err)
	}
	return Extract(resp)
}

func (p *Provider) complete(ctx context.Context, req *imagegen.GenerationRequest) (*types.ChatCompletionResponse, error) {
	payload := types.ChatCompletionRequest{
		Model: p.model,
		Messages: []types.Message{
			types.NewImageMessage(types.RoleUser, req.Prompt, req.Image.DataURI()),
		},
		Modalities: []string{"image", "text"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	p.PrepareRequest(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return decodeResponse(raw)
}

// decodeResponse parses a completion body. Only choices[0].message is read,
// and a field of an unexpected shape leaves it absent rather than failing.
// Only a body that is not a JSON object is an error.
func decodeResponse(raw []byte) (*types.ChatCompletionResponse, error) {
	var envelope struct {
		ID      json.RawMessage `json:"id"`
		Model   json.RawMessage `json:"model"`
		Choices json.RawMessage `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	resp := &types.ChatCompletionResponse{
		ID:    lenientString(envelope.ID),
		Model: lenientString(envelope.Model),
	}
	if msg, ok := firstMessage(envelope.Choices); ok {
		resp.Choices = []types.Choice{{Message: msg}}
	}
	return resp, nil
}

// firstMessage decodes choices[0].message without touching the other fields
// of that choice or any sibling choice.
func firstMessage(choices json.RawMessage) (types.Message, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(choices, &list); err != nil || len(list) == 0 {
		return types.Message{}, false
	}
	var first struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(list[0], &first); err != nil || len(first.Message) == 0 {
		return types.Message{}, false
	}
	var msg struct {
		Role    json.RawMessage `json:"role"`
		Content types.Content   `json:"content"`
		Images  types.PartList  `json:"images"`
	}
	if err := json.Unmarshal(first.Message, &msg); err != nil {
		return types.Message{}, false
	}
	return types.Message{
		Role:    lenientString(msg.Role),
		Content: msg.Content,
		Images:  msg.Images,
	}, true
}

func lenientString(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}

// decodeAPIError turns a non-2xx response into an error carrying the
// provider's message when one is present.
func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr types.APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, text)
}
