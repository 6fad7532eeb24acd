// Package web provides the embedded single-page UI and the bundled default image.
package web

import "embed"

// DefaultImageName is the bundled base photo used when no upload is sent.
const DefaultImageName = "kameraboy.png"

// FS contains the embedded web UI files (index.html, static/css, static/js)
// and the default image.
//
//go:embed index.html static kameraboy.png
var FS embed.FS
