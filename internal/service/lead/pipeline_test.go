package lead

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/pkg/email"
)

// ---------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------

type fakeStore struct {
	mu    sync.Mutex
	err   error
	saved []NewLead
	order *[]string
}

func (s *fakeStore) CreateLead(_ context.Context, in NewLead) (Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order != nil {
		*s.order = append(*s.order, "persist")
	}
	if s.err != nil {
		return Lead{}, s.err
	}
	s.saved = append(s.saved, in)
	e := in.Enquiry
	now := time.Now().UTC()
	return Lead{
		ID:        uuid.Must(uuid.NewV7()),
		Reference: in.Reference,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Location:  e.Location,
		Message:   e.Message,
		Status:    StatusNew,
		Source:    in.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	got   []Lead
	order *[]string
}

func (n *fakeNotifier) NotifyLead(_ context.Context, l Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.order != nil {
		*n.order = append(*n.order, "notify")
	}
	n.got = append(n.got, l)
	return n.err
}

func (n *fakeNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.got)
}

type staticRefs string

func (r staticRefs) Reference() (string, error) { return string(r), nil }

func janeSubmission() enquiry.Submission {
	return enquiry.Submission{
		Enquiry: enquiry.Enquiry{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Austin",
			Message:  "Kitchen remodel",
		},
		Source: "web",
	}
}

// ---------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------

func TestSubmitLead_PersistThenNotify(t *testing.T) {
	var order []string
	store := &fakeStore{order: &order}
	notifier := &fakeNotifier{order: &order}
	p := New(store, notifier, staticRefs("K7Q2MX9P"), Options{})

	receipt, err := p.SubmitLead(context.Background(), janeSubmission())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, receipt.ID)
	assert.Equal(t, "K7Q2MX9P", receipt.Reference)
	assert.Equal(t, []string{"persist", "notify"}, order)

	require.Equal(t, 1, notifier.calls())
	got := notifier.got[0]
	assert.Equal(t, receipt.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "Austin", got.Location)
	assert.Equal(t, "Kitchen remodel", got.Message)
}

func TestSubmitLead_NotifyFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("smtp: connection refused")}
	p := New(store, notifier, staticRefs("K7Q2MX9P"), Options{})

	receipt, err := p.SubmitLead(context.Background(), janeSubmission())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, receipt.ID)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, 1, notifier.calls())
}

func TestSubmitLead_PersistFailureSkipsNotify(t *testing.T) {
	cause := errors.New("pq: connection reset")
	store := &fakeStore{err: cause}
	notifier := &fakeNotifier{}
	p := New(store, notifier, staticRefs("K7Q2MX9P"), Options{})

	_, err := p.SubmitLead(context.Background(), janeSubmission())
	require.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, notifier.calls())
}

func TestSubmitLead_AsyncNotify(t *testing.T) {
	release := make(chan struct{})
	var notified sync.WaitGroup
	notified.Add(1)
	notifier := NotifierFunc(func(ctx context.Context, l Lead) error {
		defer notified.Done()
		<-release
		return errors.New("mail server down")
	})
	p := New(&fakeStore{}, notifier, staticRefs("K7Q2MX9P"), Options{Async: true, NotifyTimeout: time.Second})

	_, err := p.SubmitLead(context.Background(), janeSubmission())
	require.NoError(t, err, "submit must not wait for the notifier")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)

	close(release)
	notified.Wait()
	require.NoError(t, p.Wait(context.Background()))
}

func TestSubmitLead_NotifyOutlivesRequestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var sawErr error
	notifier := NotifierFunc(func(nctx context.Context, l Lead) error {
		cancel()
		sawErr = nctx.Err()
		return nil
	})
	p := New(&fakeStore{}, notifier, staticRefs("K7Q2MX9P"), Options{})

	_, err := p.SubmitLead(ctx, janeSubmission())
	require.NoError(t, err)
	assert.NoError(t, sawErr)
}

// ---------------------------------------------------------------------
// Controller + pipeline scenarios
// ---------------------------------------------------------------------

func TestScenarios(t *testing.T) {
	jane := janeSubmission().Enquiry

	t.Run("saved and notified", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := enquiry.NewController(New(&fakeStore{}, notifier, staticRefs("K7Q2MX9P"), Options{}), enquiry.WithDraft(jane))

		_, err := c.Submit(context.Background())
		require.NoError(t, err)
		assert.True(t, c.Draft().IsZero())
		require.Equal(t, 1, notifier.calls())
		assert.Equal(t, "Jane Doe", notifier.got[0].Name)
	})

	t.Run("store unreachable", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := enquiry.NewController(New(&fakeStore{err: errors.New("dial tcp: i/o timeout")}, notifier, staticRefs("K7Q2MX9P"), Options{}), enquiry.WithDraft(jane))

		_, err := c.Submit(context.Background())
		require.ErrorIs(t, err, ErrPersistence)
		assert.Equal(t, jane, c.Draft())
		assert.Equal(t, 0, notifier.calls())
	})

	t.Run("notifier down", func(t *testing.T) {
		store := &fakeStore{}
		c := enquiry.NewController(New(store, &fakeNotifier{err: errors.New("503")}, staticRefs("K7Q2MX9P"), Options{}), enquiry.WithDraft(jane))

		_, err := c.Submit(context.Background())
		require.NoError(t, err)
		assert.True(t, c.Draft().IsZero())
		assert.Len(t, store.saved, 1)
	})
}

// ---------------------------------------------------------------------
// Notifiers
// ---------------------------------------------------------------------

func TestMultiNotifier_ContinuesAfterFailure(t *testing.T) {
	first := &fakeNotifier{err: errors.New("boom")}
	second := &fakeNotifier{}
	m := NewMultiNotifier(Channel{Name: "email", Notifier: first}, Channel{Name: "log", Notifier: second})

	err := m.NotifyLead(context.Background(), Lead{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email: boom")
	assert.Equal(t, 1, second.calls())
}

type recordingSender struct {
	msgs []email.Message
}

func (s *recordingSender) Send(_ context.Context, m email.Message) error {
	s.msgs = append(s.msgs, m)
	return nil
}

func TestEmailNotifier(t *testing.T) {
	sender := &recordingSender{}
	n := NewEmailNotifier(sender, EmailNotifierConfig{To: []string{"studio@example.com"}, StudioName: "Interiora"})

	id := uuid.New()
	require.NoError(t, n.NotifyLead(context.Background(), Lead{
		ID: id, Reference: "K7Q2MX9P", Name: "Jane Doe", Email: "jane@example.com",
		Phone: "555-0100", Location: "Austin", Message: "Kitchen remodel", CreatedAt: time.Now(),
	}))

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, []string{"studio@example.com"}, msg.To)
	assert.Equal(t, "jane@example.com", msg.ReplyTo)
	assert.True(t, strings.Contains(msg.TextBody, id.String()))
}

type recordingPublisher struct {
	subject string
	data    []byte
}

func (p *recordingPublisher) Publish(subj string, data []byte) error {
	p.subject, p.data = subj, data
	return nil
}

func TestEventNotifier(t *testing.T) {
	pub := &recordingPublisher{}
	l := Lead{ID: uuid.New(), Reference: "K7Q2MX9P", Name: "Jane Doe", Status: StatusNew}

	require.NoError(t, NewEventNotifier(pub).NotifyLead(context.Background(), l))
	assert.Equal(t, "interiora.lead.created."+l.ID.String(), pub.subject)

	decoded, err := DecodeEvent(pub.data)
	require.NoError(t, err)
	assert.Equal(t, l.ID, decoded.ID)
	assert.Equal(t, "Jane Doe", decoded.Name)
}

type recordingTexter struct {
	to     string
	params map[string]string
}

func (r *recordingTexter) SendTemplate(_ context.Context, to string, params map[string]string) error {
	r.to, r.params = to, params
	return nil
}

func TestSMSNotifier(t *testing.T) {
	_, err := NewSMSNotifier(&recordingTexter{}, "not a phone", "GB")
	require.Error(t, err)

	texter := &recordingTexter{}
	n, err := NewSMSNotifier(texter, "0121 234 5678", "GB")
	require.NoError(t, err)

	require.NoError(t, n.NotifyLead(context.Background(), Lead{Name: "Jane Doe", Location: "Austin", Reference: "K7Q2MX9P"}))
	assert.Equal(t, "+441212345678", texter.to)
	assert.Equal(t, "K7Q2MX9P", texter.params["reference"])
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("contacted")
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, st)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
