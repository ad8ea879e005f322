package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
	"github.com/Alijeyrad/interiora_backend/pkg/redis"
	"github.com/Alijeyrad/interiora_backend/pkg/reqctx"
	"github.com/Alijeyrad/interiora_backend/pkg/util/password"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

type User struct {
	ID                  uuid.UUID      `json:"id"`
	Email               string         `json:"email"`
	PasswordHash        string         `json:"-"`
	Role                authorize.Role `json:"role"`
	FailedLoginAttempts int            `json:"-"`
	LockedUntil         *time.Time     `json:"locked_until,omitempty"`
	LastLoginAt         *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until access token expires
}

type LeadQuery struct {
	Status  string
	Page    int
	PerPage int
}

type LeadPage struct {
	Leads   []lead.Lead `json:"leads"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
}

// LeadFilter is the store-level form of LeadQuery. Empty Status means all.
type LeadFilter struct {
	Status lead.Status
	Limit  int
	Offset int
}

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type UserStore interface {
	// GetAdminByEmail matches case-insensitively and returns ErrUserNotFound.
	GetAdminByEmail(ctx context.Context, email string) (User, error)
	// CreateAdmin returns ErrEmailTaken on a duplicate email.
	CreateAdmin(ctx context.Context, u User) (User, error)
	// RecordFailedLogin bumps the failure counter and sets locked_until when
	// it reaches maxAttempts.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, lockUntil time.Time) error
	RecordSuccessfulLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type LeadStore interface {
	ListLeads(ctx context.Context, f LeadFilter) ([]lead.Lead, int, error)
	// UpdateLeadStatus returns lead.ErrLeadNotFound.
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status lead.Status) (lead.Lead, error)
}

// Sessions is satisfied by *redis.SessionStore.
type Sessions interface {
	Create(ctx context.Context, sessionID, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
	Touch(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error
	Delete(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

type Options struct {
	MaxFailedLogins int
	LockoutDuration time.Duration
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, email, pass string) (*AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error

	// ListLeads and UpdateLeadStatus authorize the role carried by the
	// claims in ctx.
	ListLeads(ctx context.Context, q LeadQuery) (*LeadPage, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) (lead.Lead, error)

	CreateAdmin(ctx context.Context, email, pass, role string) (User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type adminService struct {
	users    UserStore
	leads    LeadStore
	sessions Sessions
	tokens   *pasetotoken.Manager
	hasher   *password.Hasher
	authz    authorize.IAuthorization
	opts     Options
	now      func() time.Time
}

func New(
	users UserStore,
	leads LeadStore,
	sessions Sessions,
	tokens *pasetotoken.Manager,
	hasher *password.Hasher,
	authz authorize.IAuthorization,
	opts Options,
) Service {
	if opts.MaxFailedLogins <= 0 {
		opts.MaxFailedLogins = 5
	}
	if opts.LockoutDuration <= 0 {
		opts.LockoutDuration = 15 * time.Minute
	}
	return &adminService{
		users:    users,
		leads:    leads,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		authz:    authz,
		opts:     opts,
		now:      time.Now,
	}
}

// ---------------------------------------------------------------------------
// Login / Refresh / Logout
// ---------------------------------------------------------------------------

func (s *adminService) Login(ctx context.Context, email, pass string) (*AuthTokens, error) {
	email = normalizeEmail(email)
	if email == "" || pass == "" {
		metrics.RecordAuthAttempt("invalid")
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetAdminByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		_ = s.hasher.VerifyDummy(pass)
		metrics.RecordAuthAttempt("invalid")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	now := s.now()
	if u.IsLocked(now) {
		metrics.RecordAuthAttempt("locked")
		return nil, ErrAccountLocked
	}

	if err := password.Verify(u.PasswordHash, pass); err != nil {
		if rerr := s.users.RecordFailedLogin(ctx, u.ID, s.opts.MaxFailedLogins, now.Add(s.opts.LockoutDuration)); rerr != nil {
			slog.Warn("admin: record failed login", "user_id", u.ID, "err", rerr)
		}
		metrics.RecordAuthAttempt("invalid")
		return nil, ErrInvalidCredentials
	}

	if err := s.users.RecordSuccessfulLogin(ctx, u.ID, now); err != nil {
		slog.Warn("admin: record login", "user_id", u.ID, "err", err)
	}
	if s.hasher.NeedsRehash(u.PasswordHash) {
		s.rehash(ctx, u.ID, pass)
	}

	metrics.RecordAuthAttempt("success")
	return s.createSession(ctx, u)
}

func (s *adminService) rehash(ctx context.Context, id uuid.UUID, pass string) {
	hash, err := s.hasher.Hash(pass)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, id, hash)
	}
	if err != nil {
		slog.Warn("admin: rehash password", "user_id", id, "err", err)
	}
}

func (s *adminService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != pasetotoken.TokenTypeRefresh || claims.SessionID == nil {
		return nil, ErrInvalidToken
	}

	owner, err := s.sessions.Get(ctx, *claims.SessionID)
	if errors.Is(err, redis.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner != claims.UserID {
		return nil, ErrInvalidToken
	}

	if err := s.sessions.Touch(ctx, *claims.SessionID, s.tokens.RefreshTTL()); err != nil {
		slog.Warn("admin: extend session", "session_id", claims.SessionID, "err", err)
	}

	access, err := s.tokens.IssueAccess(pasetotoken.Subject{UserID: claims.UserID, Role: claims.Role}, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	// The refresh token stays the same until logout.
	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *adminService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		slog.Debug("logout: session already expired", "session_id", sessionID)
	}
	return nil
}

func (s *adminService) createSession(ctx context.Context, u User) (*AuthTokens, error) {
	sessionID := uuid.Must(uuid.NewV7())

	if err := s.sessions.Create(ctx, sessionID, u.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	sub := pasetotoken.Subject{UserID: u.ID, Role: string(u.Role)}
	access, err := s.tokens.IssueAccess(sub, &sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(sub, &sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

func (s *adminService) ListLeads(ctx context.Context, q LeadQuery) (*LeadPage, error) {
	if err := s.authorize(ctx, authorize.ResourceLead, authorize.ActionRead); err != nil {
		return nil, err
	}

	var f LeadFilter
	if q.Status != "" {
		st, err := lead.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}

	page := max(q.Page, 1)
	perPage := q.PerPage
	switch {
	case perPage <= 0:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	leads, total, err := s.leads.ListLeads(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	return &LeadPage{Leads: leads, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *adminService) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) (lead.Lead, error) {
	if err := s.authorize(ctx, authorize.ResourceLead, authorize.ActionUpdate); err != nil {
		return lead.Lead{}, err
	}
	st, err := lead.ParseStatus(status)
	if err != nil {
		return lead.Lead{}, err
	}

	l, err := s.leads.UpdateLeadStatus(ctx, id, st)
	if err != nil {
		return lead.Lead{}, err
	}
	reqctx.Logger(ctx).Info("admin: lead status updated", "lead_id", id, "status", st)
	return l, nil
}

func (s *adminService) authorize(ctx context.Context, res authorize.Resource, act authorize.Action) error {
	claims := reqctx.ClaimsFromContext(ctx)
	if claims == nil || claims.IsExpired() {
		return ErrUnauthenticated
	}
	return s.authz.MustEnforce(ctx, authorize.Role(claims.GetRole()), res, act)
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func (s *adminService) CreateAdmin(ctx context.Context, email, pass, role string) (User, error) {
	email = normalizeEmail(email)
	if !enquiry.ValidEmail(email) {
		return User{}, ErrInvalidEmail
	}
	r, err := authorize.ParseRole(role)
	if err != nil {
		return User{}, err
	}
	if err := password.CheckStrength(pass); err != nil {
		return User{}, err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.CreateAdmin(ctx, User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		PasswordHash: hash,
		Role:         r,
	})
	if err != nil {
		return User{}, err
	}
	slog.Info("admin: user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
