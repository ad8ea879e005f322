package enquiry

import (
	"regexp"
	"strings"
)

// local@domain where the domain has at least one dot and no empty labels.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Validate checks that every field is filled and the email is well formed.
// Missing fields are reported before a malformed email.
func Validate(e Enquiry) error {
	var missing []Field
	for _, f := range Fields {
		if strings.TrimSpace(e.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Kind: ErrMissingFields, Fields: missing}
	}

	if !ValidEmail(e.Email) {
		return &ValidationError{Kind: ErrInvalidEmail, Fields: []Field{FieldEmail}}
	}
	return nil
}
