package enquiry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []Submission
	err     error
	receipt Receipt
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSubmitter) SubmitLead(_ context.Context, s Submission) (Receipt, error) {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	f.mu.Unlock()
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	return f.receipt, f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func jane() Enquiry {
	return Enquiry{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		Location: "Austin",
		Message:  "Kitchen remodel",
	}
}

func fill(c *Controller, e Enquiry) {
	for _, f := range Fields {
		c.UpdateField(f, e.Get(f))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Enquiry)
		wantErr    error
		wantFields []Field
	}{
		{"valid", func(*Enquiry) {}, nil, nil},
		{"empty name", func(e *Enquiry) { e.Name = "" }, ErrMissingFields, []Field{FieldName}},
		{"blank location", func(e *Enquiry) { e.Location = "   " }, ErrMissingFields, []Field{FieldLocation}},
		{"several missing", func(e *Enquiry) { e.Phone = ""; e.Message = "" }, ErrMissingFields, []Field{FieldPhone, FieldMessage}},
		{"missing wins over bad email", func(e *Enquiry) { e.Email = "bob@"; e.Name = "" }, ErrMissingFields, []Field{FieldName}},
		{"no domain", func(e *Enquiry) { e.Email = "bob@" }, ErrInvalidEmail, []Field{FieldEmail}},
		{"no at", func(e *Enquiry) { e.Email = "bob.com" }, ErrInvalidEmail, []Field{FieldEmail}},
		{"no local part", func(e *Enquiry) { e.Email = "@x.com" }, ErrInvalidEmail, []Field{FieldEmail}},
		{"dotless domain", func(e *Enquiry) { e.Email = "bob@x" }, ErrInvalidEmail, []Field{FieldEmail}},
		{"trailing dot", func(e *Enquiry) { e.Email = "bob@x." }, ErrInvalidEmail, []Field{FieldEmail}},
		{"space inside", func(e *Enquiry) { e.Email = "bo b@x.com" }, ErrInvalidEmail, []Field{FieldEmail}},
		{"subdomain", func(e *Enquiry) { e.Email = "bob@mail.x.co.uk" }, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := jane()
			tt.mutate(&e)
			err := Validate(e)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}

func TestController_UpdateField(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	c.UpdateField(FieldName, "Jane")
	c.UpdateField(FieldName, "Jane Doe")
	c.UpdateField(Field("nickname"), "JD")

	assert.Equal(t, Enquiry{Name: "Jane Doe"}, c.Draft())
	assert.Equal(t, StateIdle, c.State())
}

func TestController_SubmitSuccessResetsDraft(t *testing.T) {
	id := uuid.New()
	sub := &fakeSubmitter{receipt: Receipt{ID: id, Reference: "K7Q2MX9P"}}
	c := NewController(sub, WithSource("web"), WithClient("203.0.113.7", "test-agent"))
	fill(c, jane())

	receipt, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, id, receipt.ID)
	assert.True(t, c.Draft().IsZero())
	assert.Equal(t, StateIdle, c.State())
	assert.NoError(t, c.LastError())
	got, ok := c.LastReceipt()
	assert.True(t, ok)
	assert.Equal(t, receipt, got)

	require.Equal(t, 1, sub.callCount())
	assert.Equal(t, jane(), sub.calls[0].Enquiry)
	assert.Equal(t, "web", sub.calls[0].Source)
	assert.Equal(t, "203.0.113.7", sub.calls[0].ClientIP)
}

func TestController_SubmitTrimsValues(t *testing.T) {
	sub := &fakeSubmitter{}
	e := jane()
	e.Name = "  Jane Doe "
	c := NewController(sub, WithDraft(e))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", sub.calls[0].Enquiry.Name)
}

func TestController_ValidationFailureSkipsSubmitter(t *testing.T) {
	for _, email := range []string{"bob@", "bob.com", "@x.com"} {
		t.Run(email, func(t *testing.T) {
			sub := &fakeSubmitter{}
			e := jane()
			e.Email = email
			c := NewController(sub, WithDraft(e))

			_, err := c.Submit(context.Background())
			assert.ErrorIs(t, err, ErrInvalidEmail)
			assert.Equal(t, 0, sub.callCount())
			assert.Equal(t, e, c.Draft())
			assert.ErrorIs(t, c.LastError(), ErrInvalidEmail)
		})
	}

	t.Run("empty field", func(t *testing.T) {
		sub := &fakeSubmitter{}
		e := jane()
		e.Message = ""
		c := NewController(sub, WithDraft(e))

		_, err := c.Submit(context.Background())
		assert.ErrorIs(t, err, ErrMissingFields)
		assert.Equal(t, 0, sub.callCount())
		assert.Equal(t, e, c.Draft())
	})
}

func TestController_PersistenceFailureKeepsDraft(t *testing.T) {
	failure := errors.New("could not save your enquiry")
	sub := &fakeSubmitter{err: failure}
	c := NewController(sub, WithDraft(jane()))

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, jane(), c.Draft())
	assert.Equal(t, StateIdle, c.State())
	assert.ErrorIs(t, c.LastError(), failure)
	_, ok := c.LastReceipt()
	assert.False(t, ok)
}

func TestController_StateTransitions(t *testing.T) {
	var seen []State
	c := NewController(&fakeSubmitter{}, WithDraft(jane()), WithObserver(func(s State) {
		seen = append(seen, s)
	}))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []State{StateValidating, StateSubmitting, StateIdle}, seen)

	seen = nil
	_, err = c.Submit(context.Background())
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, []State{StateValidating, StateIdle}, seen)
}

func TestController_RejectsSubmitWhileBusy(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{}), entered: make(chan struct{})}
	c := NewController(sub, WithDraft(jane()))

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-sub.entered
	assert.Equal(t, StateSubmitting, c.State())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(sub.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.callCount())
}

func TestParseField(t *testing.T) {
	f, ok := ParseField(" Email ")
	assert.True(t, ok)
	assert.Equal(t, FieldEmail, f)

	_, ok = ParseField("budget")
	assert.False(t, ok)
}
