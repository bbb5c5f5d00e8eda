package schedule

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a schedule, template index,
// calendar entry or direct event does not exist.
var ErrNotFound = errors.New("not found")

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrEndBeforeStart    = errors.New("start time must be before end time")
	ErrInvalidDay        = errors.New("day must be an integer 0-6 or a non-empty list of such integers")
)

// ValidationError reports a schema violation in untrusted schedule or
// event data. Field is empty for document-level problems.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// RangeError reports an inverted date range or a calendar entry that
// collides with an existing one. ConflictStart and ConflictEnd name the
// existing range when the error is a collision.
type RangeError struct {
	Msg           string
	ConflictStart string
	ConflictEnd   string
}

func (e *RangeError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRange reports whether err is, or wraps, a *RangeError.
func IsRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
