package types

// ChatCompletionRequest represents an OpenAI chat completion request.
// Only the fields the image endpoint sends are modeled.
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	// Modalities asks OpenRouter for image output ("image", "text").
	Modalities []string `json:"modalities,omitempty"`

	User string `json:"user,omitempty"` // End-user identifier
}
