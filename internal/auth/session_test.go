package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	manager := newTestManager(t, "test-secret", time.Hour)

	token, expires, err := manager.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if !expires.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expires)
	}

	if err := manager.Verify(token); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSessionRejectsForeignSecret(t *testing.T) {
	issuer := newTestManager(t, "secret-one", time.Hour)
	verifier := newTestManager(t, "secret-two", time.Hour)

	token, _, err := issuer.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := verifier.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	manager := newTestManager(t, "test-secret", time.Hour)

	token, _, err := manager.Issue(time.Now().Add(-48 * time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := manager.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	manager := newTestManager(t, "test-secret", time.Hour)

	token, _, err := manager.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if err := manager.Verify(tampered); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected tampered token to fail, got %v", err)
	}
}

func TestNewSessionManagerRequiresSecret(t *testing.T) {
	if _, err := NewSessionManager(SessionConfig{}); !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestGateCheckPassword(t *testing.T) {
	manager := newTestManager(t, "test-secret", time.Hour)
	gate, err := NewGate("letmein", manager, nil)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	if !gate.CheckPassword("letmein") {
		t.Fatal("expected matching password to pass")
	}
	if gate.CheckPassword("LETMEIN") {
		t.Fatal("expected case-sensitive comparison")
	}
	if gate.CheckPassword("") {
		t.Fatal("expected empty password to fail")
	}
}

func TestNewGateRequiresPassword(t *testing.T) {
	manager := newTestManager(t, "test-secret", time.Hour)
	if _, err := NewGate("  ", manager, nil); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func newTestManager(tb testing.TB, secret string, ttl time.Duration) *SessionManager {
	tb.Helper()
	manager, err := NewSessionManager(SessionConfig{Secret: secret, TTL: ttl})
	if err != nil {
		tb.Fatalf("NewSessionManager: %v", err)
	}
	return manager
}
