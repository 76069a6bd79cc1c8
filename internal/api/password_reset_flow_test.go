package api

import (
	"net/http"
	"strings"
	"testing"
)

func extractResetToken(t *testing.T, body string) string {
	t.Helper()

	_, after, found := strings.Cut(body, "reset token is: ")
	if !found {
		t.Fatalf("expected mail body to carry a token, got %q", body)
	}
	token := strings.Fields(after)[0]
	if token == "" {
		t.Fatal("expected non-empty reset token in mail body")
	}
	return token
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	app, _, mailer := newTestApp(t)
	registerTestUser(t, app, "user@example.com", "")

	response, _ := postJSON(t, app, "/api/auth/forgot-password", map[string]any{
		"email": "user@example.com",
	}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected forgot-password status 200, got %d", response.StatusCode)
	}

	mail, delivered := mailer.last()
	if !delivered {
		t.Fatal("expected a reset mail to be delivered")
	}
	if mail.Recipient != "user@example.com" {
		t.Fatalf("expected mail for user@example.com, got %s", mail.Recipient)
	}
	token := extractResetToken(t, mail.Body)

	resetResponse, resetPayload := postJSON(t, app, "/api/auth/reset-password", map[string]any{
		"token":        token,
		"new_password": "FreshPass1",
	}, "")
	if resetResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected reset status 200, got %d (%v)", resetResponse.StatusCode, resetPayload)
	}

	oldLogin, _ := postJSON(t, app, "/api/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "StrongPass1",
	}, "")
	if oldLogin.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected, got %d", oldLogin.StatusCode)
	}

	newLogin, _ := postJSON(t, app, "/api/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "FreshPass1",
	}, "")
	if newLogin.StatusCode != http.StatusOK {
		t.Fatalf("expected new password to work, got %d", newLogin.StatusCode)
	}

	// Single use: the spent token is gone.
	reuse, reusePayload := postJSON(t, app, "/api/auth/reset-password", map[string]any{
		"token":        token,
		"new_password": "AnotherPass1",
	}, "")
	if reuse.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected reused token to be rejected, got %d (%v)", reuse.StatusCode, reusePayload)
	}
}

func TestForgotPassword_UnknownEmailGetsSameResponse(t *testing.T) {
	t.Parallel()

	app, _, mailer := newTestApp(t)
	registerTestUser(t, app, "known@example.com", "")

	knownResponse, knownPayload := postJSON(t, app, "/api/auth/forgot-password", map[string]any{
		"email": "known@example.com",
	}, "")
	unknownResponse, unknownPayload := postJSON(t, app, "/api/auth/forgot-password", map[string]any{
		"email": "unknown@example.com",
	}, "")

	if knownResponse.StatusCode != http.StatusOK || unknownResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected both responses 200, got %d and %d", knownResponse.StatusCode, unknownResponse.StatusCode)
	}
	if knownPayload["message"] != unknownPayload["message"] {
		t.Fatalf("expected identical messages, got %v and %v", knownPayload, unknownPayload)
	}

	mail, delivered := mailer.last()
	if !delivered || mail.Recipient != "known@example.com" {
		t.Fatalf("expected exactly the known address to receive mail, got %+v", mail)
	}
	if len(mailer.messages) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(mailer.messages))
	}
}

func TestResetPassword_GarbageToken(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	response, payload := postJSON(t, app, "/api/auth/reset-password", map[string]any{
		"token":        "never-issued",
		"new_password": "FreshPass1",
	}, "")
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if payload["error"] != "invalid or expired reset token" {
		t.Fatalf("unexpected error payload %v", payload)
	}
}
