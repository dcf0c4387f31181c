package authkit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// UserService covers the admin user-management surface.
type UserService struct {
	client *Client
}

// ListUsersParams filters the admin user listing.
type ListUsersParams struct {
	Search  string // matches email or name
	Banned  *bool  // nil = all
	Page    int
	PerPage int
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// List returns users matching params.
func (s *UserService) List(ctx context.Context, params ListUsersParams) (*UserPage, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Banned != nil {
		q.Set("banned", strconv.FormatBool(*params.Banned))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(params.PerPage))
	}

	var out UserPage
	if err := s.client.get(ctx, "/users", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.client.get(ctx, "/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BanParams describes a ban. ExpiresInSeconds of zero means indefinite.
type BanParams struct {
	Reason           string `json:"reason"`
	ExpiresInSeconds int    `json:"expiresIn,omitempty"`
}

// Ban bans a user; the service also revokes their sessions.
func (s *UserService) Ban(ctx context.Context, id string, params BanParams) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, "/users/"+id+"/ban", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unban lifts a ban.
func (s *UserService) Unban(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, "/users/"+id+"/unban", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
