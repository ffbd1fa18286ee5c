package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrCardDisabled rejects the card payment method, which is not
	// yet offered. Informational only; nothing changes state.
	ErrCardDisabled = errors.New("card payments are not available yet")
)

// ValidationError reports the first failing input check. Recovered
// locally by correcting the input, never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SubmissionError wraps an upstream order create/update failure. The
// cart and form state survive it so a retry needs no re-entry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// FetchError wraps an order list refresh failure. Non-fatal; the stale
// cached list remains visible.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("order fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
