// Package generate serves POST /api/generate-image.
package generate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mandalnilabja/memelab/internal/imagegen"
	"github.com/mandalnilabja/memelab/internal/storage"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/memelab/internal/transport/http/middleware"
	"github.com/mandalnilabja/memelab/internal/types"
)

// Generator is the pipeline the handler drives.
type Generator interface {
	Generate(ctx context.Context, body io.Reader) (*imagegen.GenerationResult, error)
	Backend() imagegen.Backend
	ProviderName() string
}

// Handlers holds the dependencies for the generate endpoint.
type Handlers struct {
	Service      Generator
	Storage      storage.Storage // optional usage log
	Logger       *slog.Logger
	MaxBodyBytes int64

	pending sync.WaitGroup
}

// New creates a new instance of generate handlers. store may be nil.
func New(svc Generator, store storage.Storage, logger *slog.Logger, maxBodyBytes int64) *Handlers {
	return &Handlers{
		Service:      svc,
		Storage:      store,
		Logger:       logger,
		MaxBodyBytes: maxBodyBytes,
	}
}

// GenerateImage handles POST /api/generate-image.
func (h *Handlers) GenerateImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	body := r.Body
	if h.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	result, err := h.Service.Generate(r.Context(), body)
	duration := time.Since(start)

	if err != nil {
		status := imagegen.StatusOf(err)
		message := imagegen.PublicMessage(err)
		h.Logger.Log(r.Context(), levelFor(status), "generation failed",
			"request_id", requestID,
			"provider", h.Service.ProviderName(),
			"kind", imagegen.KindOf(err),
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		shared.WriteJSONError(w, message, status)
		h.recordAsync(requestID, string(imagegen.KindOf(err)), status, message, duration)
		return
	}

	h.Logger.Info("image generated",
		"request_id", requestID,
		"provider", h.Service.ProviderName(),
		"mime_type", result.MIMEType,
		"duration_ms", duration.Milliseconds(),
	)
	shared.WriteJSON(w, types.GenerateImageResponse{
		ImageBase64: result.ImageBase64,
		MIMEType:    result.MIMEType,
	}, http.StatusOK)
	h.recordAsync(requestID, "ok", http.StatusOK, "", duration)
}

func levelFor(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelInfo
	}
	return slog.LevelError
}

// Wait blocks until queued usage records are written.
func (h *Handlers) Wait() {
	h.pending.Wait()
}

func (h *Handlers) recordAsync(requestID, outcome string, status int, message string, d time.Duration) {
	if h.Storage == nil {
		return
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		h.record(requestID, outcome, status, message, d)
	}()
}

// record writes the outcome to the usage log.
func (h *Handlers) record(requestID, outcome string, status int, message string, d time.Duration) {
	model := ""
	if b := h.Service.Backend(); b.Ready() {
		model = b.Provider.Model()
	}

	err := storage.Record(h.Storage, &storage.GenerationLog{
		RequestID:    requestID,
		Provider:     h.Service.ProviderName(),
		Model:        model,
		Outcome:      outcome,
		StatusCode:   status,
		ErrorMessage: message,
		DurationMs:   d.Milliseconds(),
	})
	if err != nil {
		h.Logger.Warn("failed to record generation", "request_id", requestID, "error", err)
	}
}
