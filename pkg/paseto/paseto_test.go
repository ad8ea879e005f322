package pasetotoken

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager(t *testing.T, accessTTL time.Duration) *Manager {
	t.Helper()
	m, err := New(Config{Issuer: "interiora", Audience: "interiora-admin", AccessTTL: accessTTL}, NewLocalKeys())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t, time.Minute)
	uid := uuid.New()
	sid := uuid.New()

	tok, err := m.IssueAccess(Subject{UserID: uid, Role: "admin"}, &sid)
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("Type = %q", claims.Type)
	}
	if claims.UserID != uid || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.SessionID == nil || *claims.SessionID != sid {
		t.Errorf("SessionID = %v, want %v", claims.SessionID, sid)
	}
}

func TestVerifyRejects(t *testing.T) {
	m := newTestManager(t, time.Minute)
	other := newTestManager(t, time.Minute)

	foreign, err := other.IssueAccess(Subject{UserID: uuid.New()}, nil)
	if err != nil {
		t.Fatal(err)
	}

	expiredMgr := newTestManager(t, time.Nanosecond)
	expiredMgr.keys = m.keys
	expired, err := expiredMgr.IssueAccess(Subject{UserID: uuid.New()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	for name, tok := range map[string]string{
		"garbage":       "v4.local.nope",
		"different key": foreign,
		"expired":       expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(tok)
			var invalid ErrInvalidToken
			if !errors.As(err, &invalid) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestLoadKeys(t *testing.T) {
	if _, err := LoadKeys(KeyStrings{Mode: ModeLocal}); err == nil {
		t.Error("LoadKeys() without key should fail")
	}

	keys, err := LoadKeys(KeyStrings{Mode: ModeLocal, SymmetricHex: GenerateLocalKeyHex()})
	if err != nil {
		t.Fatalf("LoadKeys() error = %v", err)
	}
	if keys.Symmetric == nil {
		t.Error("Symmetric key not loaded")
	}
}
