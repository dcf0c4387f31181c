// Package authkit is the server-side client for the external auth+billing
// service. It covers the surface the starter uses: magic links, sessions,
// users, organizations, invitations, bans, impersonation and subscriptions.
//
// Every call is one HTTP round trip, authenticated with the service secret.
// There are no retries: a failed call surfaces as an *APIError and the
// request that triggered it fails.
package authkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/km-arc/go-saas-starter/framework/config"
)

// Client talks to the auth service API.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client

	MagicLinks    *MagicLinkService
	Sessions      *SessionService
	Users         *UserService
	Organizations *OrganizationService
	Invitations   *InvitationService
	Impersonation *ImpersonationService
	Subscriptions *SubscriptionService
}

// Option customizes the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests point it at an
// httptest server transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a Client from the service configuration.
func New(cfg config.AuthServiceConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.URL,
		secret:  cfg.Secret,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.MagicLinks = &MagicLinkService{client: c}
	c.Sessions = &SessionService{client: c}
	c.Users = &UserService{client: c}
	c.Organizations = &OrganizationService{client: c}
	c.Invitations = &InvitationService{client: c}
	c.Impersonation = &ImpersonationService{client: c}
	c.Subscriptions = &SubscriptionService{client: c}
	return c
}

// do performs one JSON API call. Mutating calls carry an idempotency key so
// the service can drop accidental duplicates.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authkit: encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("authkit: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("authkit: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("authkit: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// get performs a GET with query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}
