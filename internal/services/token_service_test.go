package services

import (
	"errors"
	"testing"
	"time"

	"github.com/tuifinancial/finserv/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret-key"))

	token, err := issuer.Issue("manager@example.com", models.RoleManager)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != "manager@example.com" {
		t.Fatalf("expected subject manager@example.com, got %q", claims.Subject)
	}
	if claims.Role != models.RoleManager {
		t.Fatalf("expected role %q, got %q", models.RoleManager, claims.Role)
	}
}

func TestTokenIssuer_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte("test-secret-key"))
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.Issue("user@example.com", models.RoleTeamMember)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	issuer.now = func() time.Time { return issuedAt.Add(SessionTokenTTL - time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("expected token to verify before expiry, got %v", err)
	}

	issuer.now = func() time.Time { return issuedAt.Add(SessionTokenTTL + time.Minute) }
	if _, err := issuer.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after expiry, got %v", err)
	}
}

func TestTokenIssuer_RejectsTamperedAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret-key"))
	token, err := issuer.Issue("user@example.com", models.RoleTeamMember)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Verify(token + "x"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
	if _, err := issuer.Verify(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}

	foreign := NewTokenIssuer([]byte("other-secret-key"))
	if _, err := foreign.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for token signed with another key, got %v", err)
	}
}
