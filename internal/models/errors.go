package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed or missing coordinates and radii.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedResponse is returned when a provider answers with a success status
	// but the body lacks an expected field or cannot be decoded.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrEnrichmentFailure marks a flight whose weather lookup failed.
	ErrEnrichmentFailure = errors.New("weather enrichment failed")
)

// UpstreamError describes a transport failure or a non-success status from a provider.
// StatusCode is zero when no response was received.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Provider + " API request failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s API returned status %d", e.Provider, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
