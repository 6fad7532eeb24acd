package source

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/memelab/internal/imagegen"
)

// maxRemoteImageBytes caps the size of a fetched default image.
const maxRemoteImageBytes = 20 << 20

// Remote fetches the default image from a fixed URL. Successful fetches are
// cached for TTL so concurrent requests do not refetch it.
type Remote struct {
	URL string
	TTL time.Duration

	// Observe, when set, is told whether each load was a cache "hit", a
	// "miss" that fetched the image, or an "error".
	Observe func(result string)

	client *http.Client
	cache  *ristretto.Cache[string, imagegen.ImagePayload]
}

// NewRemote creates a Remote source. client may be nil to use
// http.DefaultClient; a TTL of 0 disables caching.
func NewRemote(url string, ttl time.Duration, client *http.Client) (*Remote, error) {
	if client == nil {
		client = http.DefaultClient
	}
	r := &Remote{URL: url, TTL: ttl, client: client}
	if ttl > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, imagegen.ImagePayload]{
			NumCounters: 100,
			MaxCost:     64 << 20,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("create image cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Load returns the cached image or fetches it.
func (r *Remote) Load(ctx context.Context) (imagegen.ImagePayload, error) {
	if r.cache != nil {
		if payload, ok := r.cache.Get(r.URL); ok {
			r.observe("hit")
			return payload, nil
		}
	}

	payload, err := r.fetch(ctx)
	if err != nil {
		r.observe("error")
		return imagegen.ImagePayload{}, err
	}
	r.observe("miss")

	if r.cache != nil {
		r.cache.SetWithTTL(r.URL, payload, int64(len(payload.Data)), r.TTL)
		r.cache.Wait()
	}
	return payload, nil
}

func (r *Remote) observe(result string) {
	if r.Observe != nil {
		r.Observe(result)
	}
}

// Close releases the cache.
func (r *Remote) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

func (r *Remote) fetch(ctx context.Context) (imagegen.ImagePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return imagegen.ImagePayload{}, fmt.Errorf("build default image request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return imagegen.ImagePayload{}, fmt.Errorf("fetch default image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return imagegen.ImagePayload{}, fmt.Errorf("fetch default image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageBytes+1))
	if err != nil {
		return imagegen.ImagePayload{}, fmt.Errorf("read default image: %w", err)
	}
	if len(data) > maxRemoteImageBytes {
		return imagegen.ImagePayload{}, fmt.Errorf("default image at %s exceeds %d bytes", r.URL, maxRemoteImageBytes)
	}
	if len(data) == 0 {
		return imagegen.ImagePayload{}, fmt.Errorf("default image at %s is empty", r.URL)
	}

	return imagegen.ImagePayload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: contentType(resp.Header.Get("Content-Type")),
	}, nil
}

// contentType strips parameters from a declared Content-Type and falls back
// to the default MIME type when none is declared or it is not an image type.
func contentType(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return imagegen.DefaultMIMEType
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || !imagegen.IsImageMIMEType(mediaType) {
		return imagegen.DefaultMIMEType
	}
	return mediaType
}
