package lead

import (
	"context"

	"github.com/Alijeyrad/interiora_backend/pkg/util/phone"
)

// TemplateTexter is satisfied by *sms.Client.
type TemplateTexter interface {
	SendTemplate(ctx context.Context, phoneNumber string, params map[string]string) error
}

// SMSNotifier texts the studio phone a short heads-up.
type SMSNotifier struct {
	texter TemplateTexter
	to     string
}

// NewSMSNotifier normalises to into E.164 using region.
func NewSMSNotifier(texter TemplateTexter, to, region string) (*SMSNotifier, error) {
	number, err := phone.E164(to, region)
	if err != nil {
		return nil, err
	}
	return &SMSNotifier{texter: texter, to: number}, nil
}

func (n *SMSNotifier) NotifyLead(ctx context.Context, l Lead) error {
	return n.texter.SendTemplate(ctx, n.to, map[string]string{
		"name":      l.Name,
		"location":  l.Location,
		"reference": l.Reference,
	})
}
