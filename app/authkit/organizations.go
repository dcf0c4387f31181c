package authkit

import (
	"context"
	"net/http"
	"net/url"
)

// ── Organizations ────────────────────────────────────────────────────────────

// OrganizationService covers tenant membership.
type OrganizationService struct {
	client *Client
}

// List returns the organizations a user belongs to.
func (s *OrganizationService) List(ctx context.Context, userID string) ([]Organization, error) {
	var out struct {
		Organizations []Organization `json:"organizations"`
	}
	q := url.Values{"userId": {userID}}
	if err := s.client.get(ctx, "/organizations", q, &out); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

// Create creates an organization; the creating user becomes its owner.
func (s *OrganizationService) Create(ctx context.Context, userID, name, slug string) (*Organization, error) {
	var out Organization
	err := s.client.do(ctx, http.MethodPost, "/organizations", map[string]string{
		"userId": userID,
		"name":   name,
		"slug":   slug,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBySlug resolves a tenant by slug.
func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*Organization, error) {
	var out Organization
	if err := s.client.get(ctx, "/organizations/slug/"+slug, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Members lists an organization's members.
func (s *OrganizationService) Members(ctx context.Context, organizationID string) ([]Member, error) {
	var out struct {
		Members []Member `json:"members"`
	}
	if err := s.client.get(ctx, "/organizations/"+organizationID+"/members", nil, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// Membership returns the member record tying userID to the organization, or
// a 404 APIError when the user is not a member.
func (s *OrganizationService) Membership(ctx context.Context, organizationID, userID string) (*Member, error) {
	var out Member
	if err := s.client.get(ctx, "/organizations/"+organizationID+"/members/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes a member from the organization.
func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID, memberID string) error {
	return s.client.do(ctx, http.MethodDelete, "/organizations/"+organizationID+"/members/"+memberID, nil, nil)
}

// ── Invitations ──────────────────────────────────────────────────────────────

// InvitationService covers organization invitations.
type InvitationService struct {
	client *Client
}

// Create issues an invitation to email with the given role.
func (s *InvitationService) Create(ctx context.Context, organizationID, inviterID, email, role string) (*Invitation, error) {
	var out Invitation
	err := s.client.do(ctx, http.MethodPost, "/organizations/"+organizationID+"/invitations", map[string]string{
		"inviterId": inviterID,
		"email":     email,
		"role":      role,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns an organization's invitations, optionally filtered by status.
func (s *InvitationService) List(ctx context.Context, organizationID, status string) ([]Invitation, error) {
	var out struct {
		Invitations []Invitation `json:"invitations"`
	}
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if err := s.client.get(ctx, "/organizations/"+organizationID+"/invitations", q, &out); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

// Revoke cancels a pending invitation.
func (s *InvitationService) Revoke(ctx context.Context, invitationID string) error {
	return s.client.do(ctx, http.MethodPost, "/invitations/"+invitationID+"/revoke", nil, nil)
}

// Accept joins the invited user to the organization. The service checks that
// the session user's email matches the invite.
func (s *InvitationService) Accept(ctx context.Context, invitationID, sessionToken string) (*Member, error) {
	var out Member
	err := s.client.do(ctx, http.MethodPost, "/invitations/"+invitationID+"/accept", map[string]string{
		"token": sessionToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
