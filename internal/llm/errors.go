package llm

import "errors"

var (
	// ErrUnavailable indicates the interpreter backend is unreachable.
	ErrUnavailable = errors.New("interpreter unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("interpreter request timed out")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid interpreter output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("interpreter retry attempts exhausted")

	// ErrNotConfigured indicates a backend is missing required settings.
	ErrNotConfigured = errors.New("interpreter not configured")
)
