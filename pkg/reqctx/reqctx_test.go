package reqctx

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type testClaims struct {
	uid uuid.UUID
	exp time.Time
}

func (c testClaims) GetUserID() uuid.UUID     { return c.uid }
func (c testClaims) GetSessionID() *uuid.UUID { return nil }
func (c testClaims) GetRole() string          { return "admin" }
func (c testClaims) IsExpired() bool          { return time.Now().After(c.exp) }

func TestRequestMeta(t *testing.T) {
	ctx := context.Background()
	if rid := RequestIDFromContext(ctx); rid != "" {
		t.Fatalf("RequestIDFromContext() = %q on empty context", rid)
	}

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "req-1"})
	if rid := RequestIDFromContext(ctx); rid != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", rid)
	}
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	if IsAuthenticated(ctx) {
		t.Fatal("empty context reported as authenticated")
	}

	uid := uuid.New()
	ctx = WithClaims(ctx, testClaims{uid: uid, exp: time.Now().Add(time.Minute)})
	if !IsAuthenticated(ctx) {
		t.Error("IsAuthenticated() = false with valid claims")
	}
	got, ok := UserIDFromContext(ctx)
	if !ok || got != uid {
		t.Errorf("UserIDFromContext() = %v, %v", got, ok)
	}

	expired := WithClaims(context.Background(), testClaims{uid: uid, exp: time.Now().Add(-time.Minute)})
	if IsAuthenticated(expired) {
		t.Error("IsAuthenticated() = true with expired claims")
	}
}
