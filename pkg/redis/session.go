package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or expired")

func sessionKey(id uuid.UUID) string { return "session:" + id.String() }

// SessionStore keeps admin sessions as session:<id> -> user id with a TTL.
type SessionStore struct {
	rdb goredis.Cmdable
}

func NewSessionStore(rdb goredis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Create(ctx context.Context, sessionID, userID uuid.UUID, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKey(sessionID), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns the user owning the session.
func (s *SessionStore) Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	v, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("redis get session: %w", err)
	}
	return uuid.Parse(v)
}

// Touch extends the session TTL.
func (s *SessionStore) Touch(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error {
	ok, err := s.rdb.Expire(ctx, sessionKey(sessionID), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes the session. A missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := s.rdb.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}
