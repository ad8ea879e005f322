package lead

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
)

var tracer = otel.Tracer("github.com/Alijeyrad/interiora_backend/internal/service/lead")

// Service is the lead submission pipeline: persist, then notify.
type Service interface {
	enquiry.Submitter

	// Wait blocks until detached notifications finish or ctx is done.
	Wait(ctx context.Context) error
}

type Options struct {
	// Async detaches notification from the submission. Its outcome is
	// only logged.
	Async bool

	// NotifyTimeout bounds one notification attempt. Zero means no bound.
	NotifyTimeout time.Duration
}

type pipeline struct {
	store    Store
	notifier Notifier
	refs     ReferenceGenerator
	opts     Options

	wg sync.WaitGroup
}

func New(store Store, notifier Notifier, refs ReferenceGenerator, opts Options) Service {
	return &pipeline{
		store:    store,
		notifier: notifier,
		refs:     refs,
		opts:     opts,
	}
}

// SubmitLead persists the submission and then notifies the studio.
// Notification starts only after the store has returned the lead id, and
// its failure never changes the result.
func (p *pipeline) SubmitLead(ctx context.Context, sub enquiry.Submission) (enquiry.Receipt, error) {
	ctx, span := tracer.Start(ctx, "lead.submit", trace.WithAttributes(
		attribute.String("lead.source", sub.Source),
	))
	defer span.End()

	l, err := p.persist(ctx, sub)
	if err != nil {
		metrics.RecordLeadPersistFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		slog.Error("lead: persist failed", "source", sub.Source, "err", err)
		return enquiry.Receipt{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	metrics.RecordLeadSubmitted(sub.Source)
	span.SetAttributes(attribute.String("lead.id", l.ID.String()))
	slog.Info("lead: saved", "lead_id", l.ID, "reference", l.Reference, "source", l.Source)

	// The visitor's request may end before the email is out.
	nctx := context.WithoutCancel(ctx)
	if p.opts.Async {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.notify(nctx, l)
		}()
	} else {
		p.notify(nctx, l)
	}

	return enquiry.Receipt{ID: l.ID, Reference: l.Reference}, nil
}

func (p *pipeline) persist(ctx context.Context, sub enquiry.Submission) (Lead, error) {
	ctx, span := tracer.Start(ctx, "lead.persist")
	defer span.End()

	ref, err := p.refs.Reference()
	if err != nil {
		return Lead{}, fmt.Errorf("generate reference: %w", err)
	}

	l, err := p.store.CreateLead(ctx, NewLead{
		Reference: ref,
		Enquiry:   sub.Enquiry,
		Source:    sub.Source,
		ClientIP:  sub.ClientIP,
		UserAgent: sub.UserAgent,
	})
	if err != nil {
		span.RecordError(err)
		return Lead{}, err
	}
	return l, nil
}

func (p *pipeline) notify(ctx context.Context, l Lead) {
	ctx, span := tracer.Start(ctx, "lead.notify", trace.WithAttributes(
		attribute.String("lead.id", l.ID.String()),
	))
	defer span.End()

	if p.opts.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.NotifyTimeout)
		defer cancel()
	}

	if err := p.notifier.NotifyLead(ctx, l); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notify failed")
		slog.Warn("lead: notification failed", "lead_id", l.ID, "reference", l.Reference, "err", err)
	}
}

func (p *pipeline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
