package lead

import (
	"context"

	"github.com/Alijeyrad/interiora_backend/pkg/email"
	"github.com/Alijeyrad/interiora_backend/pkg/util/phone"
)

// EmailSender is satisfied by *email.Client.
type EmailSender interface {
	Send(ctx context.Context, m email.Message) error
}

type EmailNotifierConfig struct {
	To            []string
	SubjectPrefix string
	StudioName    string
	// PhoneRegion is used to pretty-print local phone numbers.
	PhoneRegion string
}

// EmailNotifier emails the studio inbox about a new lead.
type EmailNotifier struct {
	sender EmailSender
	cfg    EmailNotifierConfig
}

func NewEmailNotifier(sender EmailSender, cfg EmailNotifierConfig) *EmailNotifier {
	return &EmailNotifier{sender: sender, cfg: cfg}
}

func (n *EmailNotifier) NotifyLead(ctx context.Context, l Lead) error {
	msg := email.BuildLeadNotificationEmail(email.LeadEmailData{
		To:            n.cfg.To,
		SubjectPrefix: n.cfg.SubjectPrefix,
		StudioName:    n.cfg.StudioName,
		ID:            l.ID.String(),
		Reference:     l.Reference,
		Name:          l.Name,
		Email:         l.Email,
		Phone:         phone.Display(l.Phone, n.cfg.PhoneRegion),
		Location:      l.Location,
		Message:       l.Message,
		Source:        l.Source,
		SubmittedAt:   l.CreatedAt,
	})
	return n.sender.Send(ctx, msg)
}
