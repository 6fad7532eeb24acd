// Package imagegen implements the image remix pipeline: request normalization,
// provider invocation and extraction of the generated image.
package imagegen

import (
	"context"
	"strings"
)

// DefaultMIMEType is assumed whenever a source does not declare one.
const DefaultMIMEType = "image/png"

// ImagePayload is an image carried as base64 text. It only lives for the
// duration of one request.
type ImagePayload struct {
	Data     string
	MIMEType string
}

// DataURI renders the payload as data:<mime>;base64,<data>.
func (p ImagePayload) DataURI() string {
	return "data:" + p.MIMEType + ";base64," + p.Data
}

// IsImageMIMEType reports whether mimeType looks like image/<subtype>.
func IsImageMIMEType(mimeType string) bool {
	sub, ok := strings.CutPrefix(mimeType, "image/")
	return ok && sub != "" && !strings.ContainsAny(sub, " ,;")
}

// GenerationRequest is what the provider receives: the final prompt and the
// image to remix. Image is always populated.
type GenerationRequest struct {
	Prompt string
	Image  ImagePayload
}

// GenerationResult is the success payload of the endpoint.
type GenerationResult struct {
	ImageBase64 string `json:"imageBase64"`
	MIMEType    string `json:"mimeType"`
}

// Provider calls an external image model and extracts the generated image.
type Provider interface {
	// Name returns the provider identifier used in logs and metrics.
	Name() string

	// Model returns the model identifier requests are sent to.
	Model() string

	// Generate performs a single provider call. Errors are *Error values of
	// kind UpstreamError, NoImageFound or MalformedDataURI, or InvalidRequest
	// when the provider has to decode an uploaded image and cannot.
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)
}

// ImageSource supplies the default image when the caller did not upload one.
type ImageSource interface {
	Load(ctx context.Context) (ImagePayload, error)
}
