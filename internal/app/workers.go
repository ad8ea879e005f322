package app

import (
	"context"
	"log/slog"
	"slices"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/email"
	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
)

const leadMailerQueue = "interiora-lead-mailer"

// WorkerModule registers the NATS lead mailer.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc    fx.Lifecycle
	Cfg   *config.Config
	NC    *nats.Conn
	Email *email.Client
}

// RegisterWorkers starts the lead mailer when leads are published as events
// and the studio email is not already sent inline.
func RegisterWorkers(p WorkerParams) {
	channels := p.Cfg.Notification.Channels
	if p.NC == nil || !slices.Contains(channels, "events") || slices.Contains(channels, "email") {
		return
	}
	if p.Email == nil || !p.Email.Enabled() {
		slog.Warn("lead_mailer: email disabled, events will not be delivered")
		return
	}

	mailer := NewLeadEmailNotifier(p.Cfg, p.Email)
	var sub *nats.Subscription

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			sub, err = p.NC.QueueSubscribe(constants.SubjectLeadCreatedAll, leadMailerQueue, LeadEventHandler(mailer))
			if err != nil {
				return err
			}
			slog.Info("lead_mailer: subscribed", "subject", constants.SubjectLeadCreatedAll)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if sub == nil {
				return nil
			}
			return sub.Unsubscribe()
		},
	})
}

// LeadEventHandler decodes a lead event and hands it to n. Failures are
// logged and dropped; the lead is already persisted.
func LeadEventHandler(n lead.Notifier) nats.MsgHandler {
	return func(msg *nats.Msg) {
		l, err := lead.DecodeEvent(msg.Data)
		if err != nil {
			slog.Warn("lead_mailer: bad event", "subject", msg.Subject, "err", err)
			return
		}

		err = n.NotifyLead(context.Background(), l)
		metrics.RecordLeadNotification("email", err)
		if err != nil {
			slog.Warn("lead_mailer: delivery failed", "lead_id", l.ID, "reference", l.Reference, "err", err)
		}
	}
}
