package enquiry

import (
	"errors"
	"strings"
)

var (
	ErrMissingFields    = errors.New("please fill in all fields")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// ValidationError reports which fields failed. It unwraps to ErrMissingFields
// or ErrInvalidEmail so callers can use errors.Is.
type ValidationError struct {
	Kind   error
	Fields []Field
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return e.Kind.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Code is the stable machine-readable name used in API responses.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrMissingFields:
		return "missing_fields"
	case ErrInvalidEmail:
		return "invalid_email"
	default:
		return "invalid"
	}
}
