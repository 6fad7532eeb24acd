package imagegen

import (
	"errors"
	"net/http"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindInvalidRequest      Kind = "invalid_request"
	KindServerMisconfigured Kind = "server_misconfigured"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUpstreamError       Kind = "upstream_error"
	KindNoImageFound        Kind = "no_image_found"
	KindMalformedDataURI    Kind = "malformed_data_uri"
	KindInternal            Kind = "internal"
)

// Error is the error type returned by every stage of the generation pipeline.
// Message is safe to show to the caller; Err holds the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so callers can write
// errors.Is(err, imagegen.ErrNoImageFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRequest      = &Error{Kind: KindInvalidRequest}
	ErrServerMisconfigured = &Error{Kind: KindServerMisconfigured}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrUpstreamError       = &Error{Kind: KindUpstreamError}
	ErrNoImageFound        = &Error{Kind: KindNoImageFound}
	ErrMalformedDataURI    = &Error{Kind: KindMalformedDataURI}
)

// NewError creates an Error of the given kind.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidRequest creates a caller-caused error.
func InvalidRequest(message string) *Error {
	return NewError(KindInvalidRequest, message, nil)
}

// ServerMisconfigured creates an operator-caused error.
func ServerMisconfigured(message string) *Error {
	return NewError(KindServerMisconfigured, message, nil)
}

// UpstreamUnavailable reports that the default image could not be obtained.
func UpstreamUnavailable(message string, err error) *Error {
	return NewError(KindUpstreamUnavailable, message, err)
}

// UpstreamError reports a failed provider call. The underlying error text is
// part of the public message.
func UpstreamError(prefix string, err error) *Error {
	msg := prefix
	if err != nil {
		msg = prefix + ": " + err.Error()
	}
	return NewError(KindUpstreamError, msg, nil)
}

// NoImageFound reports a provider response without a usable image.
func NoImageFound(message string) *Error {
	return NewError(KindNoImageFound, message, nil)
}

// MalformedDataURI reports a located data URI that cannot be split.
func MalformedDataURI(message string) *Error {
	return NewError(KindMalformedDataURI, message, nil)
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf maps err to the HTTP status code returned to the caller.
func StatusOf(err error) int {
	if KindOf(err) == KindInvalidRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Unexpected server error."
}
