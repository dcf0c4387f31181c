package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/framework/config"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// ── fake auth service ────────────────────────────────────────────────────────

// fakeService is a minimal in-memory stand-in for the auth service: one valid
// session, one organization, one membership.
func fakeService(t *testing.T) *authkit.Client {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("token") {
		case "sess_valid":
			writeJSON(w, 200, map[string]any{
				"session": map[string]any{"id": "s_1", "userId": "u_1", "token": "sess_valid"},
				"user":    map[string]any{"id": "u_1", "email": "alice@example.com", "role": "user"},
			})
		case "sess_admin":
			writeJSON(w, 200, map[string]any{
				"session": map[string]any{"id": "s_2", "userId": "u_2", "token": "sess_admin"},
				"user":    map[string]any{"id": "u_2", "email": "root@example.com", "role": "admin"},
			})
		default:
			writeJSON(w, 401, map[string]any{"code": "invalid_session", "message": "Session is invalid."})
		}
	})

	mux.HandleFunc("/organizations/slug/acme", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": "org_1", "name": "Acme", "slug": "acme"})
	})
	mux.HandleFunc("/organizations/slug/ghost", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]any{"code": "not_found", "message": "No such organization."})
	})
	mux.HandleFunc("/organizations/org_1/members/u_1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": "m_1", "userId": "u_1", "organizationId": "org_1", "role": "owner"})
	})
	mux.HandleFunc("/organizations/org_1/members/u_2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]any{"code": "not_a_member", "message": "Not a member."})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return authkit.New(config.AuthServiceConfig{URL: srv.URL, Secret: "sk_test"},
		authkit.WithHTTPClient(srv.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "Test", Env: "testing", URL: "http://app.test"},
		Session: config.SessionConfig{CookieName: "saas_session"},
	}
}

// protectedRouter mounts a probe handler behind the given middleware chain.
func protectedRouter(mw *auth.Middleware, pattern string, chain ...func(http.Handler) http.Handler) *routing.Router {
	r := routing.New()
	r.Group(func(g *routing.Router) {
		g.Middleware(chain...)
		g.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
			rc := auth.FromRequest(req)
			writeJSON(w, 200, map[string]any{
				"user": rc.User.ID,
				"org": func() string {
					if rc.Organization == nil {
						return ""
					}
					return rc.Organization.ID
				}(),
			})
		})
	})
	return r
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthenticate_ValidSession(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := protectedRouter(mw, "/dashboard", mw.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_valid"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200 (%s)", rr.Code, rr.Body.String())
	}
	var body map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["user"] != "u_1" {
		t.Errorf("handler must see the authenticated user, got %v", body)
	}
}

func TestAuthenticate_MissingCookie_RedirectsBrowser(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := protectedRouter(mw, "/dashboard", mw.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("browser request: got %d want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/sign-in" {
		t.Errorf("location: got %q", loc)
	}
}

func TestAuthenticate_MissingCookie_JSONGets401(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := protectedRouter(mw, "/dashboard", mw.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("JSON request: got %d want 401", rr.Code)
	}
}

func TestAuthenticate_InvalidSession(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := protectedRouter(mw, "/dashboard", mw.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_revoked"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("revoked session: got %d want 401", rr.Code)
	}
}

func TestAuthenticate_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := authkit.New(config.AuthServiceConfig{URL: srv.URL}, authkit.WithHTTPClient(srv.Client()))

	mw := auth.NewMiddleware(client, testConfig())
	r := protectedRouter(mw, "/dashboard", mw.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_valid"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("service failure: got %d want 502", rr.Code)
	}
}

// ── RequireAdmin ─────────────────────────────────────────────────────────────

func TestRequireAdmin(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := protectedRouter(mw, "/admin/users", mw.Authenticate, mw.RequireAdmin)

	cases := []struct {
		label  string
		cookie string
		want   int
	}{
		{"admin passes", "sess_admin", http.StatusOK},
		{"plain user forbidden", "sess_valid", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			req.AddCookie(&http.Cookie{Name: "saas_session", Value: tc.cookie})
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Errorf("got %d want %d", rr.Code, tc.want)
			}
		})
	}
}

// ── ResolveOrganization ──────────────────────────────────────────────────────

func tenantRouter(mw *auth.Middleware) *routing.Router {
	r := routing.New()
	r.Group(func(g *routing.Router) {
		g.Middleware(mw.Authenticate)
		g.Prefix("/orgs/{org}", func(tenant *routing.Router) {
			tenant.Middleware(mw.ResolveOrganization)
			tenant.Get("/members", func(w http.ResponseWriter, req *http.Request) {
				rc := auth.FromRequest(req)
				writeJSON(w, 200, map[string]any{
					"org":  rc.Organization.ID,
					"role": rc.Member.Role,
				})
			})
		})
	})
	return r
}

func TestResolveOrganization_Member(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := tenantRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/orgs/acme/members", nil)
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_valid"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	var body map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["org"] != "org_1" || body["role"] != "owner" {
		t.Errorf("tenant context: got %v", body)
	}
}

func TestResolveOrganization_NonMemberForbidden(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := tenantRouter(mw)

	// The admin session's user (u_2) is not a member of org_1.
	req := httptest.NewRequest(http.MethodGet, "/orgs/acme/members", nil)
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_admin"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("non-member: got %d want 403", rr.Code)
	}
}

func TestResolveOrganization_UnknownSlug(t *testing.T) {
	mw := auth.NewMiddleware(fakeService(t), testConfig())
	r := tenantRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/orgs/ghost/members", nil)
	req.AddCookie(&http.Cookie{Name: "saas_session", Value: "sess_valid"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown slug: got %d want 404", rr.Code)
	}
}

// ── Context bag ──────────────────────────────────────────────────────────────

func TestContext_WithOrganizationDerives(t *testing.T) {
	base := &auth.Context{
		Session: &authkit.Session{ID: "s_1", Token: "sess_valid"},
		User:    &authkit.User{ID: "u_1"},
	}
	org := &authkit.Organization{ID: "org_1"}
	member := &authkit.Member{ID: "m_1", Role: "owner"}

	derived := base.WithOrganization(org, member)

	if derived.Organization != org || derived.Member != member {
		t.Error("derived context must carry the organization")
	}
	if base.Organization != nil {
		t.Error("the base context must stay untouched")
	}
}

func TestContext_Impersonated(t *testing.T) {
	plain := &auth.Context{Session: &authkit.Session{ID: "s_1"}}
	if plain.Impersonated() {
		t.Error("plain session is not impersonated")
	}

	imp := &auth.Context{Session: &authkit.Session{ID: "s_2", ImpersonatedBy: "u_admin"}}
	if !imp.Impersonated() {
		t.Error("session with ImpersonatedBy is impersonated")
	}
}

func TestFromRequest_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth.FromRequest(req) != nil {
		t.Error("requests outside the middleware must have no context bag")
	}
}
