// Package billing exposes the organization's subscriptions and the billing
// portal handoff. All heavy lifting happens at the payment provider behind
// the auth service; these handlers are one call each.
package billing

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/config"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// Controller handles /orgs/{org}/billing. Runs behind Authenticate and
// ResolveOrganization.
type Controller struct {
	fwapp.Controller
	client *authkit.Client
	cfg    *config.Config
}

func NewController(client *authkit.Client, cfg *config.Config) *Controller {
	return &Controller{client: client, cfg: cfg}
}

// Subscriptions lists the resolved organization's subscriptions.
//
//	GET /orgs/{org}/billing/subscriptions
func (c *Controller) Subscriptions(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	subs, err := c.client.Subscriptions.List(r.Context(), rc.Organization.ID)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Success(subs)
}

// Cancel flags a subscription to end at period close. Owners only.
//
//	POST /orgs/{org}/billing/subscriptions/{id}/cancel
func (c *Controller) Cancel(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if rc.Member.Role != "owner" {
		res.Forbidden("Only the organization owner can cancel subscriptions.")
		return
	}

	sub, err := c.client.Subscriptions.Cancel(r.Context(), routing.Param(r, "id"))
	if err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.Success(sub)
}

// Portal creates a billing-portal session and redirects the browser to it.
//
//	POST /orgs/{org}/billing/portal
func (c *Controller) Portal(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	portal, err := c.client.Subscriptions.Portal(r.Context(), rc.Organization.ID, c.cfg.Billing.ReturnURL)
	if err != nil {
		res.BadGateway()
		return
	}
	res.RedirectTo(portal.URL)
}
