package authkit

import (
	"context"
	"net/http"
	"net/url"
)

// ── Magic links ──────────────────────────────────────────────────────────────

// MagicLinkService mints and verifies one-time sign-in tokens.
type MagicLinkService struct {
	client *Client
}

// MagicLink is a minted one-time token. The application composes the URL and
// emails it; the service only knows the token.
type MagicLink struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// Create asks the service to mint a magic-link token for email. Unknown
// addresses still mint (sign-up on first verify), so callers can answer
// uniformly and avoid account enumeration.
func (s *MagicLinkService) Create(ctx context.Context, email string) (*MagicLink, error) {
	var out MagicLink
	err := s.client.do(ctx, http.MethodPost, "/magic-links", map[string]string{"email": email}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify redeems a token. On success the service creates a session; invalid
// and expired tokens come back as 401.
func (s *MagicLinkService) Verify(ctx context.Context, token, ipAddress, userAgent string) (*SessionEnvelope, error) {
	var out SessionEnvelope
	err := s.client.do(ctx, http.MethodPost, "/magic-links/verify", map[string]string{
		"token":     token,
		"ipAddress": ipAddress,
		"userAgent": userAgent,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Sessions ─────────────────────────────────────────────────────────────────

// SessionService resolves and revokes sessions.
type SessionService struct {
	client *Client
}

// Get resolves a session token to its session+user. Banned users and
// expired sessions come back as 401.
func (s *SessionService) Get(ctx context.Context, token string) (*SessionEnvelope, error) {
	var out SessionEnvelope
	q := url.Values{"token": {token}}
	if err := s.client.get(ctx, "/sessions/current", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Revoke ends one session.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.client.do(ctx, http.MethodPost, "/sessions/revoke", map[string]string{"token": token}, nil)
}

// RevokeAll ends every session belonging to a user (admin action).
func (s *SessionService) RevokeAll(ctx context.Context, userID string) error {
	return s.client.do(ctx, http.MethodPost, "/users/"+userID+"/sessions/revoke-all", nil, nil)
}

// SetActiveOrganization records the session's active tenant.
func (s *SessionService) SetActiveOrganization(ctx context.Context, token, organizationID string) error {
	return s.client.do(ctx, http.MethodPost, "/sessions/active-organization", map[string]string{
		"token":          token,
		"organizationId": organizationID,
	}, nil)
}

// ── Impersonation ────────────────────────────────────────────────────────────

// ImpersonationService lets admins act as another user.
type ImpersonationService struct {
	client *Client
}

// Start opens an impersonated session for userID on behalf of the admin
// owning adminToken. The returned session carries ImpersonatedBy.
func (s *ImpersonationService) Start(ctx context.Context, adminToken, userID string) (*SessionEnvelope, error) {
	var out SessionEnvelope
	err := s.client.do(ctx, http.MethodPost, "/impersonation/start", map[string]string{
		"token":  adminToken,
		"userId": userID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stop ends an impersonated session and returns the admin's own session.
func (s *ImpersonationService) Stop(ctx context.Context, impersonatedToken string) (*SessionEnvelope, error) {
	var out SessionEnvelope
	err := s.client.do(ctx, http.MethodPost, "/impersonation/stop", map[string]string{
		"token": impersonatedToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
