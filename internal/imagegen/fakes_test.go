package imagegen

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

type fakeSource struct {
	payload ImagePayload
	err     error
	calls   atomic.Int32
}

func (f *fakeSource) Load(ctx context.Context) (ImagePayload, error) {
	f.calls.Add(1)
	return f.payload, f.err
}

type fakeCounter struct {
	count int
	err   error
}

func (f fakeCounter) CountTokens(text string, model string) (int, error) {
	return f.count, f.err
}

type fakeProvider struct {
	result *GenerationResult
	err    error
	delay  time.Duration
	calls  atomic.Int32
	last   *GenerationRequest
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-image-1" }

func (f *fakeProvider) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResult, error) {
	f.calls.Add(1)
	f.last = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

type recordedOutcome struct {
	provider string
	kind     Kind
}

type fakeRecorder struct {
	outcomes []recordedOutcome
}

func (f *fakeRecorder) ObserveGeneration(provider string, kind Kind, d time.Duration) {
	f.outcomes = append(f.outcomes, recordedOutcome{provider: provider, kind: kind})
}

var errDisk = errors.New("read kameraboy.png: permission denied")
