package openrouter

import (
	"errors"

	"github.com/mandalnilabja/memelab/internal/imagegen"
	"github.com/mandalnilabja/memelab/internal/types"
)

const (
	msgNoImage      = "OpenRouter did not return an inline image URL."
	msgMalformedURI = "Invalid data URL returned by OpenRouter."
)

// imageCandidate is one place an image may hide in a completion message.
// locate returns the image URL it found, if any.
type imageCandidate interface {
	locate() (string, bool)
}

// imageListEntry is the message.images extension.
type imageListEntry struct {
	images types.PartList
}

func (c imageListEntry) locate() (string, bool) {
	for _, part := range c.images {
		if part.Type == types.ContentTypeImageURL && part.ImageURLValue() != "" {
			return part.ImageURLValue(), true
		}
	}
	return "", false
}

// stringContent is a plain string message content.
type stringContent struct {
	text string
}

func (c stringContent) locate() (string, bool) {
	return imagegen.ScanDataURI(c.text)
}

// partsContent is a list of content parts, searched in order.
type partsContent struct {
	parts types.PartList
}

func (c partsContent) locate() (string, bool) {
	for _, part := range c.parts {
		if part.Bare != nil {
			if uri, ok := imagegen.ScanDataURI(*part.Bare); ok {
				return uri, true
			}
			continue
		}
		if part.Type == types.ContentTypeImageURL && part.ImageURLValue() != "" {
			return part.ImageURLValue(), true
		}
	}
	return "", false
}

// candidates lists the search order for a message.
func candidates(msg *types.Message) []imageCandidate {
	if msg == nil {
		return nil
	}
	list := []imageCandidate{imageListEntry{images: msg.Images}}
	switch {
	case msg.Content.IsString():
		list = append(list, stringContent{text: msg.Content.Text})
	case msg.Content.IsSet:
		list = append(list, partsContent{parts: msg.Content.Parts})
	}
	return list
}

// Extract locates the generated image in a completion response.
func Extract(resp *types.ChatCompletionResponse) (*imagegen.GenerationResult, error) {
	for _, c := range candidates(resp.FirstMessage()) {
		uri, ok := c.locate()
		if !ok {
			continue
		}
		return parseImageURL(uri)
	}
	return nil, imagegen.NoImageFound(msgNoImage)
}

func parseImageURL(uri string) (*imagegen.GenerationResult, error) {
	result, err := imagegen.ParseDataURI(uri)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, imagegen.ErrNotDataURI):
		return nil, imagegen.NoImageFound(msgNoImage)
	default:
		return nil, imagegen.MalformedDataURI(msgMalformedURI)
	}
}
