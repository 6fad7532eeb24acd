package webui

import (
	"io/fs"
	"net/http"
	"strings"
)

// WebUIHandler creates an HTTP handler for serving the embedded web UI.
// It serves static files from the embedded filesystem and falls back to
// index.html for unknown paths.
func (h *Handlers) WebUIHandler() http.Handler {
	fileServer := http.FileServer(http.FS(h.Assets))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filePath := r.URL.Path

		// Serve static files directly
		if strings.HasPrefix(filePath, "/static/") {
			fileServer.ServeHTTP(w, r)
			return
		}

		// Unknown paths get the page itself
		if filePath != "/" {
			if _, err := fs.Stat(h.Assets, strings.TrimPrefix(filePath, "/")); err != nil {
				filePath = "/"
			}
		}

		r2 := r.Clone(r.Context())
		r2.URL.Path = filePath
		fileServer.ServeHTTP(w, r2)
	})
}

// DefaultImageHandler serves GET /kameraboy.png: the configured default
// image file if there is one, else the bundled image.
func (h *Handlers) DefaultImageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if h.DefaultImagePath != "" {
		http.ServeFile(w, r, h.DefaultImagePath)
		return
	}
	http.ServeFileFS(w, r, h.Assets, h.DefaultImage)
}
