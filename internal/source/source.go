// Package source provides the default images used when a caller does not
// upload a photo.
package source

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/mandalnilabja/memelab/internal/imagegen"
)

// Local reads the default image from disk, or from a bundled filesystem when
// Path is empty.
type Local struct {
	Path string

	// Bundled and BundledName locate the embedded fallback asset.
	Bundled     fs.FS
	BundledName string
}

// NewLocal creates a Local source.
func NewLocal(path string, bundled fs.FS, bundledName string) *Local {
	return &Local{Path: path, Bundled: bundled, BundledName: bundledName}
}

// Load reads and encodes the image. The file is read on every call so that
// operators can swap it without a restart.
func (l *Local) Load(ctx context.Context) (imagegen.ImagePayload, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case l.Path != "":
		data, err = os.ReadFile(l.Path)
	case l.Bundled != nil:
		data, err = fs.ReadFile(l.Bundled, l.BundledName)
	default:
		return imagegen.ImagePayload{}, fmt.Errorf("no default image configured")
	}
	if err != nil {
		return imagegen.ImagePayload{}, fmt.Errorf("read default image: %w", err)
	}
	if len(data) == 0 {
		return imagegen.ImagePayload{}, fmt.Errorf("default image is empty")
	}

	return imagegen.ImagePayload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: sniffMIMEType(data),
	}, nil
}

// sniffMIMEType returns the detected image type, or the default when the
// bytes are not recognizable as an image.
func sniffMIMEType(data []byte) string {
	detected := http.DetectContentType(data)
	if imagegen.IsImageMIMEType(detected) {
		return detected
	}
	return imagegen.DefaultMIMEType
}
