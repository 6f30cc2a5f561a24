package annotate

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrPrecondition  = errors.New("precondition failed")
	ErrNetwork       = errors.New("network request failed")
	ErrAdapter       = errors.New("waveform adapter failed")
	ErrStaleResponse = errors.New("stale response")
	ErrSessionClosed = errors.New("session closed")

	errEmptyResponse = errors.New("empty response from store")
)

// PreconditionError is returned when an operation is rejected before any
// state change or network call
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot proceed, %s: %s", e.Field, e.Message)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NetworkError wraps a failed persistence call
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// AdapterError wraps a waveform surface failure
type AdapterError struct {
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("waveform: %v", e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func (e *AdapterError) Is(target error) bool {
	return target == ErrAdapter
}

// StaleResponseError marks a result that arrived after its track was
// replaced. It is never applied or reported.
type StaleResponseError struct {
	Op      string
	TrackID uint
}

func (e *StaleResponseError) Error() string {
	return fmt.Sprintf("%s for track %d discarded: track no longer active", e.Op, e.TrackID)
}

func (e *StaleResponseError) Is(target error) bool {
	return target == ErrStaleResponse
}

func newPreconditionError(field, message string) error {
	return &PreconditionError{Field: field, Message: message}
}

// IsStale reports whether err is a discarded stale result
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleResponse)
}
