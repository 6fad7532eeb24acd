package types

// GenerateImageRequest is the body of POST /api/generate-image.
// The handler decodes bodies loosely; this type documents the shape and is
// used by clients and tests.
type GenerateImageRequest struct {
	// Required: free-form instruction; may be empty or whitespace.
	Prompt string `json:"prompt"`

	// Optional: base photo, honored only when uploads are enabled.
	ImageBase64 string `json:"imageBase64,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// GenerateImageResponse is the 200 body of POST /api/generate-image.
type GenerateImageResponse struct {
	ImageBase64 string `json:"imageBase64"`
	MIMEType    string `json:"mimeType"`
}
