package admin

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

	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
	"github.com/Alijeyrad/interiora_backend/pkg/redis"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
	"github.com/Alijeyrad/interiora_backend/pkg/util/password"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memUsers struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]User{}} }

func (m *memUsers) GetAdminByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) CreateAdmin(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return User{}, ErrEmailTaken
	}
	u.CreatedAt = time.Now()
	m.users[u.Email] = u
	return u, nil
}

func (m *memUsers) update(id uuid.UUID, fn func(*User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, u := range m.users {
		if u.ID == id {
			fn(&u)
			m.users[k] = u
		}
	}
}

func (m *memUsers) RecordFailedLogin(_ context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error {
	m.update(id, func(u *User) {
		u.FailedLoginAttempts++
		if u.FailedLoginAttempts >= maxAttempts {
			u.FailedLoginAttempts = 0
			u.LockedUntil = &lockUntil
		}
	})
	return nil
}

func (m *memUsers) RecordSuccessfulLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.update(id, func(u *User) {
		u.FailedLoginAttempts = 0
		u.LockedUntil = nil
		u.LastLoginAt = &at
	})
	return nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	m.update(id, func(u *User) { u.PasswordHash = hash })
	return nil
}

type memSessions struct {
	mu   sync.Mutex
	data map[uuid.UUID]uuid.UUID
}

func newMemSessions() *memSessions { return &memSessions{data: map[uuid.UUID]uuid.UUID{}} }

func (m *memSessions) Create(_ context.Context, sid, uid uuid.UUID, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sid] = uid
	return nil
}

func (m *memSessions) Get(_ context.Context, sid uuid.UUID) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.data[sid]
	if !ok {
		return uuid.Nil, redis.ErrSessionNotFound
	}
	return uid, nil
}

func (m *memSessions) Touch(_ context.Context, sid uuid.UUID, _ time.Duration) error {
	_, err := m.Get(context.Background(), sid)
	return err
}

func (m *memSessions) Delete(_ context.Context, sid uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[sid]
	delete(m.data, sid)
	return ok, nil
}

type memLeads struct {
	leads  []lead.Lead
	filter LeadFilter
}

func (m *memLeads) ListLeads(_ context.Context, f LeadFilter) ([]lead.Lead, int, error) {
	m.filter = f
	return m.leads, len(m.leads), nil
}

func (m *memLeads) UpdateLeadStatus(_ context.Context, id uuid.UUID, st lead.Status) (lead.Lead, error) {
	for i := range m.leads {
		if m.leads[i].ID == id {
			m.leads[i].Status = st
			return m.leads[i], nil
		}
	}
	return lead.Lead{}, lead.ErrLeadNotFound
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type harness struct {
	svc      Service
	users    *memUsers
	sessions *memSessions
	leads    *memLeads
	tokens   *pasetotoken.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	tokens, err := pasetotoken.New(pasetotoken.Config{Issuer: "interiora", Audience: "interiora-admin"}, pasetotoken.NewLocalKeys())
	require.NoError(t, err)
	hasher, err := password.NewHasher(password.Config{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1})
	require.NoError(t, err)
	authz, err := authorize.New(authorize.Config{})
	require.NoError(t, err)

	h := &harness{users: newMemUsers(), sessions: newMemSessions(), leads: &memLeads{}, tokens: tokens}
	h.svc = New(h.users, h.leads, h.sessions, tokens, hasher, authz, Options{})
	return h
}

func asRole(role string) context.Context {
	return reqctx.WithClaims(context.Background(), &pasetotoken.Claims{
		UserID:    uuid.New(),
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateAdminAndLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.svc.CreateAdmin(ctx, " Studio@Example.com ", "correct horse", "admin")
	require.NoError(t, err)
	assert.Equal(t, "studio@example.com", u.Email)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

	tokens, err := h.svc.Login(ctx, "STUDIO@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(15*60), tokens.ExpiresIn)

	claims, err := h.tokens.Verify(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.SessionID)
	owner, err := h.sessions.Get(ctx, *claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)
}

func TestCreateAdmin_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CreateAdmin(ctx, "bob@", "long enough", "admin")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = h.svc.CreateAdmin(ctx, "bob@example.com", "short", "admin")
	assert.ErrorIs(t, err, password.ErrTooShort)
	_, err = h.svc.CreateAdmin(ctx, "bob@example.com", "long enough", "owner")
	assert.ErrorIs(t, err, authorize.ErrInvalidArgs)

	_, err = h.svc.CreateAdmin(ctx, "bob@example.com", "long enough", "editor")
	require.NoError(t, err)
	_, err = h.svc.CreateAdmin(ctx, "BOB@example.com", "long enough", "editor")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_UnknownUser(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Login(context.Background(), "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.svc.CreateAdmin(ctx, "studio@example.com", "correct horse", "admin")
	require.NoError(t, err)

	for range 5 {
		_, err := h.svc.Login(ctx, "studio@example.com", "wrong password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = h.svc.Login(ctx, "studio@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestRefreshAndLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.svc.CreateAdmin(ctx, "studio@example.com", "correct horse", "editor")
	require.NoError(t, err)

	tokens, err := h.svc.Login(ctx, "studio@example.com", "correct horse")
	require.NoError(t, err)

	_, err = h.svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access tokens cannot refresh")

	refreshed, err := h.svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.RefreshToken, refreshed.RefreshToken)

	claims, err := h.tokens.Verify(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Role)

	require.NoError(t, h.svc.Logout(ctx, *claims.SessionID))
	require.NoError(t, h.svc.Logout(ctx, *claims.SessionID), "second logout is a no-op")

	_, err = h.svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListLeads(t *testing.T) {
	h := newHarness(t)
	h.leads.leads = []lead.Lead{{ID: uuid.New(), Name: "Jane Doe", Status: lead.StatusNew}}

	_, err := h.svc.ListLeads(context.Background(), LeadQuery{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	page, err := h.svc.ListLeads(asRole("editor"), LeadQuery{Status: "new", Page: 3, PerPage: 500})
	require.NoError(t, err)
	assert.Len(t, page.Leads, 1)
	assert.Equal(t, MaxPerPage, page.PerPage)
	assert.Equal(t, LeadFilter{Status: lead.StatusNew, Limit: 100, Offset: 200}, h.leads.filter)

	page, err = h.svc.ListLeads(asRole("editor"), LeadQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPerPage, page.PerPage)

	_, err = h.svc.ListLeads(asRole("editor"), LeadQuery{Status: "archived"})
	assert.ErrorIs(t, err, lead.ErrInvalidStatus)
}

func TestUpdateLeadStatus(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()
	h.leads.leads = []lead.Lead{{ID: id, Status: lead.StatusNew}}

	_, err := h.svc.UpdateLeadStatus(asRole("editor"), id, "contacted")
	assert.True(t, errors.Is(err, authorize.ErrForbidden))

	l, err := h.svc.UpdateLeadStatus(asRole("admin"), id, "contacted")
	require.NoError(t, err)
	assert.Equal(t, lead.StatusContacted, l.Status)

	_, err = h.svc.UpdateLeadStatus(asRole("admin"), uuid.New(), "closed")
	assert.ErrorIs(t, err, lead.ErrLeadNotFound)

	_, err = h.svc.UpdateLeadStatus(asRole("admin"), id, "archived")
	assert.ErrorIs(t, err, lead.ErrInvalidStatus)
}
