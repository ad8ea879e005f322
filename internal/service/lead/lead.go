package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
)

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNew, StatusContacted, StatusClosed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Lead is a persisted enquiry.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Source    string    `json:"source"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead is what the pipeline asks the store to persist.
type NewLead struct {
	Reference string
	Enquiry   enquiry.Enquiry
	Source    string
	ClientIP  string
	UserAgent string
}

// ---------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------

// Store persists leads. CreateLead generates the lead id.
type Store interface {
	CreateLead(ctx context.Context, in NewLead) (Lead, error)
}

// Notifier tells the studio about a new lead. Failures are never shown
// to the visitor.
type Notifier interface {
	NotifyLead(ctx context.Context, l Lead) error
}

// ReferenceGenerator issues human-friendly lead references.
type ReferenceGenerator interface {
	Reference() (string, error)
}
