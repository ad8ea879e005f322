package enquiry

import (
	"context"
	"errors"
	"sync"

	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
)

// State is the controller's position in the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Controller owns one in-progress enquiry draft and drives it through
//
//	Idle -> Validating -> Idle(error)
//	Idle -> Validating -> Submitting -> Idle(reset, receipt)
//	Idle -> Validating -> Submitting -> Idle(error, draft kept)
//
// Each Submit is a single attempt. There is no retry and no timeout beyond
// the caller's context.
type Controller struct {
	submitter Submitter
	source    string
	clientIP  string
	userAgent string
	observer  func(State)

	mu      sync.Mutex
	draft   Enquiry
	state   State
	lastErr error
	receipt *Receipt
}

type Option func(*Controller)

// WithSource tags submissions with their origin (web, api, cli).
func WithSource(source string) Option {
	return func(c *Controller) { c.source = source }
}

func WithClient(ip, userAgent string) Option {
	return func(c *Controller) {
		c.clientIP = ip
		c.userAgent = userAgent
	}
}

// WithObserver registers a callback invoked on every state transition.
// It runs synchronously and must not call back into the controller.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithDraft seeds the draft, e.g. from a posted HTML form.
func WithDraft(e Enquiry) Option {
	return func(c *Controller) { c.draft = e }
}

func NewController(s Submitter, opts ...Option) *Controller {
	c := &Controller{submitter: s}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField replaces one field of the draft. It has no other effect.
func (c *Controller) UpdateField(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Set(f, value)
}

func (c *Controller) Draft() Enquiry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError is the error of the most recent Submit, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastReceipt is the receipt of the most recent successful Submit.
func (c *Controller) LastReceipt() (Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return Receipt{}, false
	}
	return *c.receipt, true
}

// Submit validates the draft and, if valid, hands it to the submitter.
// Validation failures never reach the submitter. On success the draft is
// reset; on failure it is kept so the visitor can try again.
func (c *Controller) Submit(ctx context.Context) (Receipt, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return Receipt{}, ErrSubmitInProgress
	}
	c.lastErr = nil
	c.receipt = nil
	c.transition(StateValidating)

	if err := Validate(c.draft); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure(verr.Code())
		}
		c.lastErr = err
		c.transition(StateIdle)
		c.mu.Unlock()
		return Receipt{}, err
	}

	sub := Submission{
		Enquiry:   c.draft.Normalized(),
		Source:    c.source,
		ClientIP:  c.clientIP,
		UserAgent: c.userAgent,
	}
	c.transition(StateSubmitting)
	c.mu.Unlock()

	receipt, err := c.submitter.SubmitLead(ctx, sub)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		c.transition(StateIdle)
		return Receipt{}, err
	}
	c.draft = Enquiry{}
	c.receipt = &receipt
	c.transition(StateIdle)
	return receipt, nil
}

// transition must be called with mu held.
func (c *Controller) transition(s State) {
	c.state = s
	if c.observer != nil {
		c.observer(s)
	}
}
