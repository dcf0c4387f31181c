package admin

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/authkit"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// InvitationsController manages invitations across tenants — unlike the
// member-facing /orgs routes, the back-office can see any organization.
type InvitationsController struct {
	fwapp.Controller
	client *authkit.Client
}

func NewInvitationsController(client *authkit.Client) *InvitationsController {
	return &InvitationsController{client: client}
}

// Index lists an organization's invitations.
//
//	GET /admin/organizations/{id}/invitations?status=pending
func (c *InvitationsController) Index(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	list, err := c.client.Invitations.List(r.Context(), routing.Param(r, "id"), req.Query("status"))
	if err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.Success(list)
}

// Revoke cancels any pending invitation.
//
//	POST /admin/invitations/{id}/revoke
func (c *InvitationsController) Revoke(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

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
