package enquiry

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Field names one input of the contact form.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldLocation Field = "location"
	FieldMessage  Field = "message"
)

// Fields lists every form field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldLocation, FieldMessage}

// ParseField maps a form/input name to a Field.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Enquiry is a prospective client's contact request.
type Enquiry struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (e Enquiry) Get(f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldPhone:
		return e.Phone
	case FieldLocation:
		return e.Location
	case FieldMessage:
		return e.Message
	}
	return ""
}

// Set replaces one field. Unknown fields are ignored and report false.
func (e *Enquiry) Set(f Field, value string) bool {
	switch f {
	case FieldName:
		e.Name = value
	case FieldEmail:
		e.Email = value
	case FieldPhone:
		e.Phone = value
	case FieldLocation:
		e.Location = value
	case FieldMessage:
		e.Message = value
	default:
		return false
	}
	return true
}

// Normalized returns a copy with surrounding whitespace removed.
func (e Enquiry) Normalized() Enquiry {
	return Enquiry{
		Name:     strings.TrimSpace(e.Name),
		Email:    strings.TrimSpace(e.Email),
		Phone:    strings.TrimSpace(e.Phone),
		Location: strings.TrimSpace(e.Location),
		Message:  strings.TrimSpace(e.Message),
	}
}

func (e Enquiry) IsZero() bool {
	return e == Enquiry{}
}

// ---------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------

// Submission is a validated enquiry plus request metadata.
type Submission struct {
	Enquiry   Enquiry
	Source    string
	ClientIP  string
	UserAgent string
}

// Receipt identifies a persisted lead.
type Receipt struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
}

// Submitter persists a submission and triggers notification.
// The only error it returns is a persistence failure.
type Submitter interface {
	SubmitLead(ctx context.Context, s Submission) (Receipt, error)
}
