// Package webui serves the embedded single-page UI and the bundled default
// image.
package webui

import "io/fs"

// Handlers holds the dependencies for web UI HTTP handlers.
type Handlers struct {
	// Assets holds index.html, static/ and the default image.
	Assets fs.FS

	// DefaultImage is the file name of the bundled base photo.
	DefaultImage string

	// DefaultImagePath, when set, is served in place of the bundled image.
	DefaultImagePath string
}

// New creates a new instance of web UI handlers.
func New(assets fs.FS, defaultImage, defaultImagePath string) *Handlers {
	return &Handlers{
		Assets:           assets,
		DefaultImage:     defaultImage,
		DefaultImagePath: defaultImagePath,
	}
}
