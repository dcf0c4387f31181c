package auth_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/app/mail"
	"github.com/km-arc/go-saas-starter/framework/config"
	"github.com/km-arc/go-saas-starter/framework/http/validation"
)

// ── fakes ────────────────────────────────────────────────────────────────────

// captureMailer records sent messages and can be told to fail.
type captureMailer struct {
	sent []mail.Message
	fail bool
}

func (m *captureMailer) Send(msg mail.Message) error {
	if m.fail {
		return errors.New("relay down")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// linkService answers the magic-link endpoints.
func linkService(t *testing.T) *authkit.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/magic-links", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, map[string]any{"token": "ml_tok&en", "email": "alice@example.com", "expiresIn": 600})
	})
	mux.HandleFunc("/magic-links/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = readJSON(r, &body)
		if body["token"] != "ml_good" {
			writeJSON(w, 401, map[string]any{"code": "invalid_token", "message": "Invalid."})
			return
		}
		writeJSON(w, 200, map[string]any{
			"session": map[string]any{"id": "s_1", "userId": "u_1", "token": "sess_new"},
			"user":    map[string]any{"id": "u_1", "email": "alice@example.com", "role": "user"},
		})
	})
	mux.HandleFunc("/impersonation/stop", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"session": map[string]any{"id": "s_admin", "userId": "u_2", "token": "sess_admin"},
			"user":    map[string]any{"id": "u_2", "email": "root@example.com", "role": "admin"},
		})
	})
	mux.HandleFunc("/sessions/revoke", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return authkit.New(config.AuthServiceConfig{URL: srv.URL, Secret: "sk_test"},
		authkit.WithHTTPClient(srv.Client()))
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// ── RequestMagicLink ─────────────────────────────────────────────────────────

func TestRequestMagicLink_SendsMail(t *testing.T) {
	mailer := &captureMailer{}
	c := auth.NewController(linkService(t), mailer, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.RequestMagicLink(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "alice@example.com" {
		t.Errorf("to: got %q", msg.To)
	}
	// The verify URL embeds the token, query-escaped.
	if !strings.Contains(msg.Body, "http://app.test/auth/magic-link/verify?token=ml_tok%26en") {
		t.Errorf("body must carry the escaped verify URL:\n%s", msg.Body)
	}
}

func TestRequestMagicLink_InvalidEmail(t *testing.T) {
	mailer := &captureMailer{}
	c := auth.NewController(linkService(t), mailer, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.RequestMagicLink(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d want 422", rr.Code)
	}
	var result validation.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Success || len(result.ErrorMap.FieldMessages("email")) == 0 {
		t.Errorf("expected a field issue on email, got %+v", result)
	}
	if len(mailer.sent) != 0 {
		t.Error("no mail may leave for an invalid submission")
	}
}

func TestRequestMagicLink_MailFailure(t *testing.T) {
	mailer := &captureMailer{fail: true}
	c := auth.NewController(linkService(t), mailer, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.RequestMagicLink(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("mail failure: got %d want 500", rr.Code)
	}
}

// ── VerifyMagicLink ──────────────────────────────────────────────────────────

func TestVerifyMagicLink_SetsCookieAndRedirects(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/magic-link/verify?token=ml_good", nil)
	rr := httptest.NewRecorder()
	c.VerifyMagicLink(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("got %d want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("location: got %q", loc)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "saas_session" || cookies[0].Value != "sess_new" {
		t.Fatalf("cookies: got %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Error("session cookie must be HttpOnly and SameSite=Lax")
	}
}

func TestVerifyMagicLink_InvalidToken(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/magic-link/verify?token=ml_bad", nil)
	rr := httptest.NewRecorder()
	c.VerifyMagicLink(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("got %d want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/sign-in?error=invalid_link" {
		t.Errorf("location: got %q", loc)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("no cookie may be set for an invalid link")
	}
}

func TestVerifyMagicLink_MissingToken(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/magic-link/verify", nil)
	rr := httptest.NewRecorder()
	c.VerifyMagicLink(rr, req)

	if loc := rr.Header().Get("Location"); loc != "/sign-in?error=missing_token" {
		t.Errorf("location: got %q", loc)
	}
}

// ── SignOut ──────────────────────────────────────────────────────────────────

func TestSignOut_ClearsCookie(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	rc := &auth.Context{
		Session: &authkit.Session{ID: "s_1", Token: "sess_new"},
		User:    &authkit.User{ID: "u_1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-out", nil)
	req = req.WithContext(auth.WithContext(req.Context(), rc))
	rr := httptest.NewRecorder()
	c.SignOut(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("got %d want 302", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Errorf("cookie must be cleared, got %+v", cookies)
	}
}

// ── StopImpersonation ────────────────────────────────────────────────────────

func TestStopImpersonation_RestoresAdminSession(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	rc := &auth.Context{
		Session: &authkit.Session{ID: "s_imp", Token: "sess_imp", ImpersonatedBy: "u_2"},
		User:    &authkit.User{ID: "u_1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/impersonate/stop", nil)
	req = req.WithContext(auth.WithContext(req.Context(), rc))
	rr := httptest.NewRecorder()
	c.StopImpersonation(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "sess_admin" {
		t.Errorf("cookie must hold the admin session again, got %+v", cookies)
	}
}

func TestStopImpersonation_NotImpersonating(t *testing.T) {
	c := auth.NewController(linkService(t), &captureMailer{}, testConfig(), discardLogger())

	rc := &auth.Context{
		Session: &authkit.Session{ID: "s_1", Token: "sess_new"},
		User:    &authkit.User{ID: "u_1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/impersonate/stop", nil)
	req = req.WithContext(auth.WithContext(req.Context(), rc))
	rr := httptest.NewRecorder()
	c.StopImpersonation(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("got %d want 403", rr.Code)
	}
}
