// Package gemini implements the direct Gemini image provider on top of the
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/mandalnilabja/memelab/internal/imagegen"
)

const (
	// DefaultModel is the image-capable Gemini model.
	DefaultModel = "gemini-2.5-flash-image"

	msgNoImage = "Gemini did not return an inline image."
)

// contentGenerator is the subset of *genai.Models the provider calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider implements imagegen.Provider for the Gemini API.
type Provider struct {
	models contentGenerator
	model  string
}

// New creates a Gemini provider backed by a genai client. httpClient may be
// nil to use the SDK default.
func New(ctx context.Context, apiKey, model string, httpClient *http.Client) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newProvider(client.Models, model), nil
}

func newProvider(models contentGenerator, model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{models: models, model: model}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "gemini"
}

// Model returns the Gemini model name.
func (p *Provider) Model() string {
	return p.model
}

// Generate sends the prompt and base image as one user turn and returns the
// first inline image of the first candidate.
func (p *Provider) Generate(ctx context.Context, req *imagegen.GenerationRequest) (*imagegen.GenerationResult, error) {
	data, err := base64.StdEncoding.DecodeString(req.Image.Data)
	if err != nil {
		return nil, imagegen.InvalidRequest("Field 'imageBase64' is not valid base64.")
	}
	mimeType := req.Image.MIMEType
	if mimeType == "" {
		mimeType = imagegen.DefaultMIMEType
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := p.models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, imagegen.UpstreamError("Failed to process image with Gemini", err)
	}
	return extractInline(resp)
}

// extractInline finds the first part carrying inline data on the first
// candidate. The bytes are re-encoded as standard base64.
func extractInline(resp *genai.GenerateContentResponse) (*imagegen.GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, imagegen.NoImageFound(msgNoImage)
	}
	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = imagegen.DefaultMIMEType
			}
			return &imagegen.GenerationResult{
				ImageBase64: base64.StdEncoding.EncodeToString(part.InlineData.Data),
				MIMEType:    mimeType,
			}, nil
		}
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, imagegen.NoImageFound(fmt.Sprintf("%s (finish reason: %s)", msgNoImage, candidate.FinishReason))
	}
	return nil, imagegen.NoImageFound(msgNoImage)
}
