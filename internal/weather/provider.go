package weather

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher abstracts a forecast source (OpenWeatherMap, or a stub in tests).
type Fetcher interface {
	Fetch(ctx context.Context, dest Destination, days int) (*Payload, error)
}

// Store caches fetched payloads per destination.
type Store interface {
	SavePayload(dest Destination, payload *Payload)
	GetLatest(dest Destination) (*Payload, error)
}

// FailureKind classifies a failed forecast fetch.
type FailureKind int

const (
	FailureTransport FailureKind = iota + 1
	FailureBadStatus
	FailureMalformedBody
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureBadStatus:
		return "bad_status"
	case FailureMalformedBody:
		return "malformed_body"
	default:
		return "unknown"
	}
}

// FetchError is returned by a Fetcher when no payload could be produced.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FailureBadStatus {
		return fmt.Sprintf("forecast fetch failed: %s %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("forecast fetch failed: %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Message is the single line shown to the user.
func (e *FetchError) Message() string {
	var timeout interface{ Timeout() bool }
	if e.Kind == FailureTransport && (errors.Is(e.Err, context.DeadlineExceeded) ||
		(errors.As(e.Err, &timeout) && timeout.Timeout())) {
		return "The weather service took too long to respond. Try again!"
	}
	if e.Kind == FailureBadStatus && e.StatusCode == 404 {
		return "Could not find that destination. Check the city and state."
	}
	return "Could not fetch weather data. Try again!"
}

// NewFetchError builds a FetchError.
func NewFetchError(kind FailureKind, status int, err error) *FetchError {
	return &FetchError{Kind: kind, StatusCode: status, Err: err}
}
