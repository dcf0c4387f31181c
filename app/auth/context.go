// Package auth holds the sign-in controller and the per-request
// authentication middleware.
package auth

import (
	"context"
	"net/http"

	"github.com/km-arc/go-saas-starter/app/authkit"
)

type ctxKey int

const requestContextKey ctxKey = 0

// Context is the per-request dependency bag: the authenticated session and,
// once resolved, the active organization. It is constructed once by the
// Authenticate middleware and never mutated afterwards — organization
// resolution produces a derived copy instead.
type Context struct {
	Session *authkit.Session
	User    *authkit.User

	// Set by ResolveOrganization.
	Organization *authkit.Organization
	Member       *authkit.Member
}

// Impersonated reports whether the request runs under an admin
// impersonating the user.
func (c *Context) Impersonated() bool {
	return c != nil && c.Session.Impersonated()
}

// WithOrganization returns a derived Context with the organization attached.
func (c *Context) WithOrganization(org *authkit.Organization, member *authkit.Member) *Context {
	derived := *c
	derived.Organization = org
	derived.Member = member
	return &derived
}

// WithContext stores the bag on a request context.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromRequest returns the request's Context, or nil when the request did not
// pass the Authenticate middleware.
func FromRequest(r *http.Request) *Context {
	rc, _ := r.Context().Value(requestContextKey).(*Context)
	return rc
}
