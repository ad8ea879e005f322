package pasetotoken

import (
	"time"

	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Subject identifies who a token is issued to.
type Subject struct {
	UserID uuid.UUID
	Role   string
}

// Claims is the app-facing token payload.
type Claims struct {
	Type TokenType

	UserID    uuid.UUID
	Role      string
	SessionID *uuid.UUID

	Issuer   string
	Audience string

	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time
	TokenID   string // jti
}

// GetUserID implements reqctx.AuthClaims.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

func (c *Claims) GetSessionID() *uuid.UUID {
	return c.SessionID
}

func (c *Claims) GetRole() string {
	return c.Role
}

func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
