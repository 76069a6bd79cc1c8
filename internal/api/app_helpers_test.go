package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/tuifinancial/finserv/internal/db"
)

// recordingMailer captures deliveries so tests can inspect reset mail.
type recordingMailer struct {
	mu       sync.Mutex
	messages []recordedMail
}

type recordedMail struct {
	Recipient string
	Subject   string
	Body      string
}

func (mailer *recordingMailer) Send(recipient string, subject string, body string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.messages = append(mailer.messages, recordedMail{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	return nil
}

func (mailer *recordingMailer) last() (recordedMail, bool) {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.messages) == 0 {
		return recordedMail{}, false
	}
	return mailer.messages[len(mailer.messages)-1], true
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *recordingMailer) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "finserv-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mailer := &recordingMailer{}
	handler := NewHandler(database, []byte("test-secret-key"), mailer)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, mailer
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response, decodeJSONBody(t, response)
}

func getJSON(t *testing.T, app *fiber.App, path string, bearer string) (*http.Response, []byte) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	response.Body.Close()
	return response, body
}

func getJSONMap(t *testing.T, app *fiber.App, path string, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response, decodeJSONBody(t, response)
}

func deleteJSON(t *testing.T, app *fiber.App, path string, bearer string) (*http.Response, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(http.MethodDelete, path, nil)
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response, decodeJSONBody(t, response)
}

func decodeJSONBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	payload := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode response body %q: %v", raw, err)
		}
	}
	return payload
}

func registerTestUser(t *testing.T, app *fiber.App, email string, role string) string {
	t.Helper()

	response, payload := postJSON(t, app, "/api/auth/register", map[string]any{
		"email":    email,
		"name":     "Test User",
		"password": "StrongPass1",
		"role":     role,
	}, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d (%v)", response.StatusCode, payload)
	}

	token, _ := payload["access_token"].(string)
	if token == "" {
		t.Fatal("expected register response to include access_token")
	}
	return token
}
