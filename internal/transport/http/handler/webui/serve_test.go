package webui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"index.html":       {Data: []byte("<h1>remix</h1>")},
		"static/style.css": {Data: []byte("h1{color:red}")},
		"kameraboy.png":    {Data: []byte("\x89PNG\r\n\x1a\nbundled")},
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestWebUIHandler(t *testing.T) {
	h := New(testAssets(), "kameraboy.png", "").WebUIHandler()

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"root", "/", "<h1>remix</h1>"},
		{"static", "/static/style.css", "h1{color:red}"},
		{"unknown path", "/some/page", "<h1>remix</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h, tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}

	t.Run("missing static file", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(h, "/static/missing.js").Code)
	})
}

func TestDefaultImageHandler(t *testing.T) {
	t.Run("bundled", func(t *testing.T) {
		h := New(testAssets(), "kameraboy.png", "")
		rec := get(http.HandlerFunc(h.DefaultImageHandler), "/kameraboy.png")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "bundled")
		assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	})

	t.Run("configured path wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "base.png")
		require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\non disk"), 0o600))

		h := New(testAssets(), "kameraboy.png", path)
		rec := get(http.HandlerFunc(h.DefaultImageHandler), "/kameraboy.png")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "on disk")
	})
}
