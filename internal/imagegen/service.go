package imagegen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// Backend is the provider profile resolved at startup: either a usable
// Provider or the ServerMisconfigured error every request will get.
type Backend struct {
	Provider      Provider
	Misconfigured *Error
}

// Configured wraps a ready provider.
func Configured(p Provider) Backend {
	return Backend{Provider: p}
}

// Misconfigured marks the backend unusable with the given operator message.
func Misconfigured(message string) Backend {
	return Backend{Misconfigured: ServerMisconfigured(message)}
}

// Ready reports whether requests can reach a provider.
func (b Backend) Ready() bool {
	return b.Misconfigured == nil && b.Provider != nil
}

// Recorder receives the outcome of every generation.
type Recorder interface {
	ObserveGeneration(provider string, kind Kind, d time.Duration)
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// ProviderTimeout bounds a single provider call. 0 means no timeout.
	ProviderTimeout time.Duration

	// MaxConcurrent bounds in-flight provider calls. 0 means unbounded.
	MaxConcurrent int64

	// Recorder is optional.
	Recorder Recorder
}

// Service runs the normalize, invoke, extract pipeline for one request.
type Service struct {
	backend    Backend
	normalizer *Normalizer
	sem        *semaphore.Weighted
	timeout    time.Duration
	recorder   Recorder
}

// NewService creates a Service.
func NewService(backend Backend, normalizer *Normalizer, opts ServiceOptions) *Service {
	s := &Service{
		backend:    backend,
		normalizer: normalizer,
		timeout:    opts.ProviderTimeout,
		recorder:   opts.Recorder,
	}
	if opts.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(opts.MaxConcurrent)
	}
	return s
}

// Backend returns the provider profile the service was built with.
func (s *Service) Backend() Backend {
	return s.backend
}

// ProviderName returns the configured provider name, or "none".
func (s *Service) ProviderName() string {
	if s.backend.Provider == nil {
		return "none"
	}
	return s.backend.Provider.Name()
}

// Generate reads a request body and returns the generated image. Every
// returned error is an *Error.
func (s *Service) Generate(ctx context.Context, body io.Reader) (*GenerationResult, error) {
	start := time.Now()
	result, err := s.generate(ctx, body)
	if s.recorder != nil {
		kind := Kind("ok")
		if err != nil {
			kind = KindOf(err)
		}
		s.recorder.ObserveGeneration(s.ProviderName(), kind, time.Since(start))
	}
	return result, err
}

func (s *Service) generate(ctx context.Context, body io.Reader) (*GenerationResult, error) {
	if !s.backend.Ready() {
		if s.backend.Misconfigured != nil {
			return nil, s.backend.Misconfigured
		}
		return nil, ServerMisconfigured("No image provider is configured.")
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, InvalidRequest("Request body is too large.")
		}
		return nil, InvalidRequest("Request body must be JSON.")
	}

	req, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return nil, err
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, NewError(KindUpstreamError, "Request was cancelled before reaching the provider.", err)
		}
		defer s.sem.Release(1)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.backend.Provider.Generate(callCtx, req)
	if err != nil {
		var genErr *Error
		if errors.As(err, &genErr) {
			return nil, genErr
		}
		return nil, UpstreamError("Failed to process image with "+s.backend.Provider.Name(), err)
	}
	return result, nil
}
