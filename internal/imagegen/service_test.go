package imagegen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(p *fakeProvider, source *fakeSource, opts ServiceOptions) *Service {
	n := NewNormalizer(source, nil, NormalizerOptions{})
	return NewService(Configured(p), n, opts)
}

func TestService_Generate(t *testing.T) {
	p := &fakeProvider{result: &GenerationResult{ImageBase64: "AAAA", MIMEType: "image/png"}}
	source := &fakeSource{payload: ImagePayload{Data: "REVG", MIMEType: "image/png"}}
	rec := &fakeRecorder{}
	svc := newTestService(p, source, ServiceOptions{Recorder: rec, MaxConcurrent: 2, ProviderTimeout: time.Second})

	got, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":"pirate"}`))
	require.NoError(t, err)
	assert.Equal(t, "AAAA", got.ImageBase64)
	assert.Equal(t, "pirate\n\n"+SafetyInstruction, p.last.Prompt)
	assert.Equal(t, "REVG", p.last.Image.Data)
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, recordedOutcome{provider: "fake", kind: "ok"}, rec.outcomes[0])
}

func TestService_MisconfiguredShortCircuits(t *testing.T) {
	source := &fakeSource{payload: ImagePayload{Data: "REVG", MIMEType: "image/png"}}
	rec := &fakeRecorder{}
	n := NewNormalizer(source, nil, NormalizerOptions{})
	svc := NewService(Misconfigured("Missing OPENROUTER_API_KEY. Add your OpenRouter key to the environment."), n, ServiceOptions{Recorder: rec})

	for _, body := range []string{`{"prompt":"hi"}`, `not json`} {
		_, err := svc.Generate(context.Background(), strings.NewReader(body))
		assert.ErrorIs(t, err, ErrServerMisconfigured)
		assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	}
	assert.Zero(t, source.calls.Load())
	assert.Equal(t, "none", svc.ProviderName())
	assert.Equal(t, KindServerMisconfigured, rec.outcomes[0].kind)
}

func TestService_InvalidRequestSkipsProvider(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p, &fakeSource{}, ServiceOptions{})

	_, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":7}`))
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, p.calls.Load())
}

func TestService_BodyTooLarge(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p, &fakeSource{}, ServiceOptions{})

	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(`{"prompt":"`+strings.Repeat("x", 64)+`"}`)), 16)
	_, err := svc.Generate(context.Background(), body)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "Request body is too large.", PublicMessage(err))
}

func TestService_ProviderErrors(t *testing.T) {
	source := &fakeSource{payload: ImagePayload{Data: "REVG", MIMEType: "image/png"}}

	t.Run("typed errors pass through", func(t *testing.T) {
		p := &fakeProvider{err: NoImageFound("OpenRouter did not return an inline image URL.")}
		svc := newTestService(p, source, ServiceOptions{})
		_, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":"x"}`))
		assert.ErrorIs(t, err, ErrNoImageFound)
	})

	t.Run("rejected upload stays a caller error", func(t *testing.T) {
		p := &fakeProvider{err: InvalidRequest("Field 'imageBase64' is not valid base64.")}
		svc := newTestService(p, source, ServiceOptions{})
		_, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":"x"}`))
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, 400, StatusOf(err))
		assert.Equal(t, "Field 'imageBase64' is not valid base64.", PublicMessage(err))
	})

	t.Run("foreign errors become upstream errors", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("dial tcp: i/o timeout")}
		svc := newTestService(p, source, ServiceOptions{})
		_, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":"x"}`))
		assert.ErrorIs(t, err, ErrUpstreamError)
		assert.Equal(t, "Failed to process image with fake: dial tcp: i/o timeout", PublicMessage(err))
	})

	t.Run("timeout surfaces as upstream error", func(t *testing.T) {
		p := &fakeProvider{delay: time.Second}
		svc := newTestService(p, source, ServiceOptions{ProviderTimeout: 10 * time.Millisecond})
		_, err := svc.Generate(context.Background(), strings.NewReader(`{"prompt":"x"}`))
		assert.ErrorIs(t, err, ErrUpstreamError)
		assert.Contains(t, PublicMessage(err), context.DeadlineExceeded.Error())
	})
}

func TestService_ConcurrencyCap(t *testing.T) {
	p := &fakeProvider{delay: time.Second}
	source := &fakeSource{payload: ImagePayload{Data: "REVG", MIMEType: "image/png"}}
	svc := newTestService(p, source, ServiceOptions{MaxConcurrent: 1})

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = svc.Generate(context.Background(), strings.NewReader(`{"prompt":"first"}`))
	}()
	<-started
	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Generate(ctx, strings.NewReader(`{"prompt":"second"}`))
	assert.ErrorIs(t, err, ErrUpstreamError)
	assert.EqualValues(t, 1, p.calls.Load())
}
