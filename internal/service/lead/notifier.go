package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
)

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, l Lead) error

func (f NotifierFunc) NotifyLead(ctx context.Context, l Lead) error { return f(ctx, l) }

// Channel is a Notifier with a name for logs and metrics.
type Channel struct {
	Name     string
	Notifier Notifier
}

// MultiNotifier fans a lead out to every channel in order. One channel
// failing does not stop the others; the failures are joined.
type MultiNotifier struct {
	channels []Channel
}

func NewMultiNotifier(channels ...Channel) *MultiNotifier {
	return &MultiNotifier{channels: channels}
}

func (m *MultiNotifier) Len() int { return len(m.channels) }

func (m *MultiNotifier) NotifyLead(ctx context.Context, l Lead) error {
	var errs []error
	for _, ch := range m.channels {
		err := ch.Notifier.NotifyLead(ctx, l)
		metrics.RecordLeadNotification(ch.Name, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes the lead to the structured log. It is the fallback
// when no delivery channel is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyLead(_ context.Context, l Lead) error {
	slog.Info("lead: new enquiry",
		"lead_id", l.ID,
		"reference", l.Reference,
		"name", l.Name,
		"email", l.Email,
		"location", l.Location,
	)
	return nil
}
