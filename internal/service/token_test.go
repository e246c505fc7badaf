package service

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenSigner("test-secret", 15*time.Minute)

	token, expiresIn, err := s.Issue("alice")
	if err != nil || token == "" {
		t.Fatalf("issue failed: %v", err)
	}
	if expiresIn != 900 {
		t.Fatalf("expected expiresIn 900, got %d", expiresIn)
	}

	subject, err := s.Verify(token)
	if err != nil || subject != "alice" {
		t.Fatalf("expected subject alice, got %q (%v)", subject, err)
	}
}

func TestTokenExpired(t *testing.T) {
	s := NewTokenSigner("test-secret", 15*time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }

	token, _, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	s.now = func() time.Time { return base.Add(16 * time.Minute) }
	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	s := NewTokenSigner("test-secret", 15*time.Minute)
	other := NewTokenSigner("other-secret", 15*time.Minute)

	token, _, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	s := NewTokenSigner("test-secret", 15*time.Minute)
	if _, err := s.Verify("not-a-jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenEmptySubject(t *testing.T) {
	s := NewTokenSigner("test-secret", 15*time.Minute)
	token, _, err := s.Issue("")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := s.Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
