package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func jsonRequest(body string) *gohttp.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(r)
}

func formRequest(values url.Values) *gohttp.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(r)
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_Bind_JSON(t *testing.T) {
	var in struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	req := jsonRequest(`{"email": "a@b.com", "name": "Alice"}`)
	if err := req.Bind(&in); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if in.Email != "a@b.com" || in.Name != "Alice" {
		t.Errorf("got %+v", in)
	}
}

func TestRequest_Bind_Form(t *testing.T) {
	var in struct {
		Email string `json:"email"`
	}
	req := formRequest(url.Values{"email": {"a@b.com"}})
	if err := req.Bind(&in); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if in.Email != "a@b.com" {
		t.Errorf("got %+v", in)
	}
}

func TestRequest_Bind_EmptyBody(t *testing.T) {
	var in struct{}
	if err := jsonRequest("").Bind(&in); err == nil {
		t.Error("empty JSON body must error")
	}
}

// ── BindMap ──────────────────────────────────────────────────────────────────

func TestRequest_BindMap_JSONKeepsNesting(t *testing.T) {
	req := jsonRequest(`{"name": "Platform", "users": [{"name": "Alice"}]}`)
	m, err := req.BindMap()
	if err != nil {
		t.Fatalf("BindMap: %v", err)
	}
	if m["name"] != "Platform" {
		t.Errorf("name: got %v", m["name"])
	}
	users, ok := m["users"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("users must stay a nested array, got %T", m["users"])
	}
	if users[0].(map[string]any)["name"] != "Alice" {
		t.Errorf("users[0]: got %v", users[0])
	}
}

func TestRequest_BindMap_FormIsFlat(t *testing.T) {
	req := formRequest(url.Values{"age": {"13"}, "tags": {"a", "b"}})
	m, err := req.BindMap()
	if err != nil {
		t.Fatalf("BindMap: %v", err)
	}
	if m["age"] != "13" {
		t.Errorf("single value stays a string, got %v", m["age"])
	}
	tags, ok := m["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("repeated keys become an array, got %v", m["tags"])
	}
}

// ── Input helpers ────────────────────────────────────────────────────────────

func TestRequest_QueryAndInput(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/users?search=alice&banned=true", nil)
	req := gohttp.NewRequest(r)

	if req.Query("search") != "alice" {
		t.Errorf("Query(search): got %q", req.Query("search"))
	}
	if req.Query("missing", "fallback") != "fallback" {
		t.Error("Query fallback not applied")
	}
	if !req.Has("banned") {
		t.Error("Has(banned) must be true")
	}
}

func TestRequest_BearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok_123")
	if got := gohttp.NewRequest(r).BearerToken(); got != "tok_123" {
		t.Errorf("BearerToken: got %q", got)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := gohttp.NewRequest(r2).BearerToken(); got != "" {
		t.Errorf("missing header: got %q want empty", got)
	}
}

func TestRequest_Cookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "app_session", Value: "sess_abc"})
	req := gohttp.NewRequest(r)

	if got := req.Cookie("app_session"); got != "sess_abc" {
		t.Errorf("Cookie: got %q", got)
	}
	if got := req.Cookie("missing"); got != "" {
		t.Errorf("absent cookie: got %q want empty", got)
	}
}

func TestRequest_IsJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept", "application/json")
	if !gohttp.NewRequest(r).IsJSON() {
		t.Error("Accept: application/json must report IsJSON")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.Header.Set("Accept", "text/html")
	if gohttp.NewRequest(r2).IsJSON() {
		t.Error("HTML request must not report IsJSON")
	}
}
