package auth

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/framework/config"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// Middleware bundles the guards in front of authenticated routes.
type Middleware struct {
	client *authkit.Client
	cfg    *config.Config
}

func NewMiddleware(client *authkit.Client, cfg *config.Config) *Middleware {
	return &Middleware{client: client, cfg: cfg}
}

// Authenticate resolves the session cookie against the auth service and
// attaches the request Context bag. Unauthenticated requests get a 401 JSON
// body or a redirect to /sign-in, depending on Accept.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := gohttp.NewRequest(r)
		res := gohttp.NewResponse(w)

		token := req.Cookie(m.cfg.Session.CookieName)
		if token == "" {
			m.reject(req, res)
			return
		}

		env, err := m.client.Sessions.Get(r.Context(), token)
		if err != nil {
			// Invalid, expired, or banned — all come back as 401 from the
			// service. Anything else is an upstream failure.
			if authkit.IsUnauthorized(err) {
				m.reject(req, res)
				return
			}
			res.BadGateway()
			return
		}

		rc := &Context{Session: env.Session, User: env.User}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), rc)))
	})
}

// RequireAdmin allows only admin-role users through. Must run after
// Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := FromRequest(r)
		if rc == nil || !rc.User.IsAdmin() {
			gohttp.NewResponse(w).Forbidden()
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ResolveOrganization resolves the tenant from the {org} route param (or the
// X-Organization header) and derives the request Context with it. Requests
// from non-members are forbidden. Must run after Authenticate.
func (m *Middleware) ResolveOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := gohttp.NewResponse(w)
		rc := FromRequest(r)
		if rc == nil {
			res.Unauthorized()
			return
		}

		slug := routing.Param(r, "org")
		if slug == "" {
			slug = r.Header.Get("X-Organization")
		}
		if slug == "" {
			res.Error(http.StatusBadRequest, "No organization specified.")
			return
		}

		org, err := m.client.Organizations.GetBySlug(r.Context(), slug)
		if err != nil {
			if authkit.IsNotFound(err) {
				res.NotFound("Organization not found.")
				return
			}
			res.BadGateway()
			return
		}

		member, err := m.client.Organizations.Membership(r.Context(), org.ID, rc.User.ID)
		if err != nil {
			if authkit.IsNotFound(err) || authkit.IsForbidden(err) {
				res.Forbidden("You are not a member of this organization.")
				return
			}
			res.BadGateway()
			return
		}

		derived := rc.WithOrganization(org, member)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), derived)))
	})
}

// reject answers an unauthenticated request: JSON clients get a 401, browser
// navigation gets a redirect to the sign-in screen.
func (m *Middleware) reject(req *gohttp.Request, res *gohttp.Response) {
	if req.IsJSON() {
		res.Unauthorized()
		return
	}
	res.RedirectTo("/sign-in")
}
