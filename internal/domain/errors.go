package domain

import (
	"errors"
	"fmt"
)

// ErrCalendar is the root of every calendar error kind. errors.Is(err,
// ErrCalendar) holds for all of them.
var ErrCalendar = errors.New("calendar error")

var (
	// ErrInvalidInput marks malformed or incomplete user or model data.
	ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrCalendar)

	// ErrEventNotFound marks a match attempt that produced no candidates.
	ErrEventNotFound = fmt.Errorf("%w: event not found", ErrCalendar)

	// ErrAuthentication marks credentials rejected by the calendar store.
	ErrAuthentication = fmt.Errorf("%w: authentication failed", ErrCalendar)

	// ErrAPILimit marks a rate or quota rejection from the calendar store.
	ErrAPILimit = fmt.Errorf("%w: api limit reached", ErrCalendar)

	// ErrParsing marks interpreter output that could not be parsed at all.
	ErrParsing = fmt.Errorf("%w: parsing failed", ErrCalendar)
)

var kinds = []error{ErrInvalidInput, ErrEventNotFound, ErrAuthentication, ErrAPILimit, ErrParsing}

// CalendarError is a typed failure with a message fit for the user.
type CalendarError struct {
	Kind error
	Msg  string
	Err  error
}

func (e *CalendarError) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *CalendarError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, cause error, format string, args ...any) *CalendarError {
	return &CalendarError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// InvalidInput returns an ErrInvalidInput error with the given message.
func InvalidInput(format string, args ...any) error {
	return newError(ErrInvalidInput, nil, format, args...)
}

// EventNotFound returns an ErrEventNotFound error with the given message.
func EventNotFound(format string, args ...any) error {
	return newError(ErrEventNotFound, nil, format, args...)
}

// Authentication wraps cause as an ErrAuthentication error.
func Authentication(cause error, format string, args ...any) error {
	return newError(ErrAuthentication, cause, format, args...)
}

// APILimit wraps cause as an ErrAPILimit error.
func APILimit(cause error, format string, args ...any) error {
	return newError(ErrAPILimit, cause, format, args...)
}

// Parsing wraps cause as an ErrParsing error.
func Parsing(cause error, format string, args ...any) error {
	return newError(ErrParsing, cause, format, args...)
}

// KindOf returns the error kind sentinel err carries, or nil when err is not
// a calendar error.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Message returns the user-facing message of a CalendarError, or err.Error()
// for anything else.
func Message(err error) string {
	var ce *CalendarError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}
