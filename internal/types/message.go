// Package types provides the wire types of the image endpoint and the
// OpenAI-compatible chat types used to talk to the provider.
package types

import (
	"bytes"
	"encoding/json"
)

// Role constants for message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message with polymorphic content support.
// Content can be a string or an array of ContentPart for multimodal input.
// Images is an OpenRouter extension carrying generated images.
type Message struct {
	Role    string   `json:"role"`
	Content Content  `json:"content,omitempty"`
	Images  PartList `json:"images,omitempty"`
}

// Content represents message content that can be a string or array of parts.
type Content struct {
	Text  string   // Simple string content
	Parts PartList // Multimodal content parts
	IsSet bool     // False when the field was absent, null or of an unknown shape
}

// MarshalJSON implements custom JSON marshaling for Content.
// Outputs string if Text is set, array if Parts is set.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.Parts) > 0 {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON implements custom JSON unmarshaling for Content.
// Accepts both string and array formats; any other shape leaves Content unset.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	if isNull(data) {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.IsSet = true
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err == nil {
		c.Parts = decodeParts(raw)
		c.IsSet = true
	}
	return nil
}

// IsString reports whether the content arrived as a plain string.
func (c Content) IsString() bool {
	return c.IsSet && c.Parts == nil
}

// ContentPart represents a single part of multimodal content.
// Bare is set instead of Type when the provider sent a plain JSON string
// as a list element.
type ContentPart struct {
	Type     string    `json:"type,omitempty"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
	Bare     *string   `json:"-"`
}

// MarshalJSON writes bare parts back as strings.
func (p ContentPart) MarshalJSON() ([]byte, error) {
	if p.Bare != nil {
		return json.Marshal(*p.Bare)
	}
	type plain ContentPart
	return json.Marshal(plain(p))
}

// ImageURLValue returns the nested image URL, or "" when absent.
func (p ContentPart) ImageURLValue() string {
	if p.ImageURL == nil {
		return ""
	}
	return p.ImageURL.URL
}

// Content type constants
const (
	ContentTypeText     = "text"
	ContentTypeImageURL = "image_url"
)

// ImageURL represents an image reference in multimodal content.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"` // "auto", "low", "high"
}

// PartList is a list of content parts that tolerates foreign shapes: a value
// that is not an array decodes to nil, and elements that are neither objects
// nor strings decode to empty parts.
type PartList []ContentPart

// UnmarshalJSON implements lenient decoding for PartList.
func (l *PartList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	*l = decodeParts(raw)
	return nil
}

func decodeParts(raw []json.RawMessage) PartList {
	parts := make(PartList, 0, len(raw))
	for _, item := range raw {
		if isNull(item) {
			parts = append(parts, ContentPart{})
			continue
		}
		var bare string
		if err := json.Unmarshal(item, &bare); err == nil {
			parts = append(parts, ContentPart{Bare: &bare})
			continue
		}
		var part struct {
			Type     string          `json:"type"`
			Text     string          `json:"text"`
			ImageURL json.RawMessage `json:"image_url"`
		}
		if err := json.Unmarshal(item, &part); err != nil {
			parts = append(parts, ContentPart{})
			continue
		}
		parts = append(parts, ContentPart{
			Type:     part.Type,
			Text:     part.Text,
			ImageURL: decodeImageURL(part.ImageURL),
		})
	}
	return parts
}

func decodeImageURL(data json.RawMessage) *ImageURL {
	if len(data) == 0 || isNull(data) {
		return nil
	}
	var u ImageURL
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// NewImageMessage creates a message with text and image content.
func NewImageMessage(role, text, imageURL string) Message {
	return Message{
		Role: role,
		Content: Content{
			Parts: PartList{
				{Type: ContentTypeText, Text: text},
				{Type: ContentTypeImageURL, ImageURL: &ImageURL{URL: imageURL}},
			},
		},
	}
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
