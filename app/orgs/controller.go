// Package orgs exposes organization membership to signed-in users:
// listing, creation, switching the active tenant, members and invitations.
package orgs

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/http/validation"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// Controller handles the /orgs routes. Everything here runs behind the
// Authenticate middleware; member-scoped routes also run behind
// ResolveOrganization.
type Controller struct {
	fwapp.Controller
	client *authkit.Client
}

func NewController(client *authkit.Client) *Controller {
	return &Controller{client: client}
}

// Index lists the organizations the current user belongs to.
//
//	GET /orgs
func (c *Controller) Index(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	list, err := c.client.Organizations.List(r.Context(), rc.User.ID)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Success(list)
}

// Store creates an organization with the current user as owner.
//
//	POST /orgs  {"name": "...", "slug": "..."}
func (c *Controller) Store(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	rc := auth.FromRequest(r)

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"name": "required|min:2|max:100",
		"slug": "required|alpha_dash|min:2|max:50",
	})
	if s.Fails() {
		res.FormResult(s.Result())
		return
	}

	name, _ := values["name"].(string)
	slug, _ := values["slug"].(string)
	org, err := c.client.Organizations.Create(r.Context(), rc.User.ID, name, slug)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Created(org)
}

// SetActive records the organization as the session's active tenant.
//
//	POST /orgs/{org}/active
func (c *Controller) SetActive(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if err := c.client.Sessions.SetActiveOrganization(r.Context(), rc.Session.Token, rc.Organization.ID); err != nil {
		res.BadGateway()
		return
	}
	res.Success(rc.Organization)
}

// Members lists the resolved organization's members.
//
//	GET /orgs/{org}/members
func (c *Controller) Members(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	members, err := c.client.Organizations.Members(r.Context(), rc.Organization.ID)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Success(members)
}

// RemoveMember removes a member. Owners and org admins only.
//
//	POST /orgs/{org}/members/{id}/remove
func (c *Controller) RemoveMember(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if rc.Member.Role != "owner" && rc.Member.Role != "admin" {
		res.Forbidden()
		return
	}

	memberID := routing.Param(r, "id")
	if err := c.client.Organizations.RemoveMember(r.Context(), rc.Organization.ID, memberID); err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.NoContent()
}

// ── Invitations ──────────────────────────────────────────────────────────────

// Invite issues an invitation into the resolved organization.
//
//	POST /orgs/{org}/invitations  {"email": "...", "role": "member"}
func (c *Controller) Invite(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if rc.Member.Role != "owner" && rc.Member.Role != "admin" {
		res.Forbidden()
		return
	}

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"email": "required|email",
		"role":  "required|in:admin,member",
	})
	if s.Fails() {
		res.FormResult(s.Result())
		return
	}

	email, _ := values["email"].(string)
	role, _ := values["role"].(string)
	inv, err := c.client.Invitations.Create(r.Context(), rc.Organization.ID, rc.User.ID, email, role)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Created(inv)
}

// Invitations lists the organization's pending invitations.
//
//	GET /orgs/{org}/invitations
func (c *Controller) Invitations(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	rc := auth.FromRequest(r)

	list, err := c.client.Invitations.List(r.Context(), rc.Organization.ID, req.Query("status", "pending"))
	if err != nil {
		res.BadGateway()
		return
	}
	res.Success(list)
}

// RevokeInvitation cancels a pending invitation.
//
//	POST /orgs/{org}/invitations/{id}/revoke
func (c *Controller) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if rc.Member.Role != "owner" && rc.Member.Role != "admin" {
		res.Forbidden()
		return
	}

	if err := c.client.Invitations.Revoke(r.Context(), routing.Param(r, "id")); err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.NoContent()
}

// Accept joins the signed-in user to the inviting organization.
//
//	GET /invitations/{id}/accept
func (c *Controller) Accept(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	member, err := c.client.Invitations.Accept(r.Context(), routing.Param(r, "id"), rc.Session.Token)
	if err != nil {
		switch {
		case authkit.IsNotFound(err):
			res.NotFound("Invitation not found or expired.")
		case authkit.IsForbidden(err):
			res.Forbidden("This invitation was issued to a different address.")
		default:
			res.BadGateway()
		}
		return
	}
	res.Success(member)
}
