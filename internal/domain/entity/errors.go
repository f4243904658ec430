package entity

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable is returned by OS adapters when the running
// platform has no permission API for a resource.
var ErrCapabilityUnavailable = errors.New("os capability unavailable")

// ErrRecordNotFound is returned when deleting an unknown prompt record.
var ErrRecordNotFound = errors.New("prompt record not found")

// ValidationError reports input rejected before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FormatError reports a persisted document that cannot be interpreted.
type FormatError struct {
	Version string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable prompt history document: %v", e.Err)
	}
	return fmt.Sprintf("unsupported prompt history version %q", e.Version)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsFormatError reports whether err wraps a FormatError.
func IsFormatError(err error) bool {
	var f *FormatError
	return errors.As(err, &f)
}
