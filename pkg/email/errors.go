package email

import (
	"errors"
	"fmt"
)

var ErrDisabled = errors.New("email is disabled")

// InvalidMessageError reports a message or client setup that can never be
// delivered. Retrying it is pointless.
type InvalidMessageError struct{ Reason string }

func (e *InvalidMessageError) Error() string { return "invalid email message: " + e.Reason }

func invalid(reason string) error { return &InvalidMessageError{Reason: reason} }

// SendError wraps a failure of the SMTP exchange itself.
type SendError struct {
	Host string
	Err  error
}

func (e *SendError) Error() string { return fmt.Sprintf("smtp send via %s: %v", e.Host, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }
