package main

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/admin"
	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/app/billing"
	"github.com/km-arc/go-saas-starter/app/forms"
	"github.com/km-arc/go-saas-starter/app/mail"
	"github.com/km-arc/go-saas-starter/app/orgs"
	appproviders "github.com/km-arc/go-saas-starter/app/providers"
	"github.com/km-arc/go-saas-starter/app/repository"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/container"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

func main() {
	application := fwapp.New() // loads .env automatically

	// ── Application providers ────────────────────────────────────────────────
	application.Register(&appproviders.DatabaseServiceProvider{})
	application.Register(&appproviders.AuthKitServiceProvider{})
	application.Register(&appproviders.MailServiceProvider{})
	application.Register(&appproviders.RepositoryServiceProvider{})
	application.Register(&appproviders.AdminServiceProvider{})
	application.Boot()

	cfg := application.Config()
	logger := application.Logger()
	client := container.Resolve[*authkit.Client](application.Container, "authkit")
	mailer := container.Resolve[mail.Mailer](application.Container, "mailer")

	mw := auth.NewMiddleware(client, cfg)
	authCtrl := auth.NewController(client, mailer, cfg, logger)
	orgsCtrl := orgs.NewController(client)
	billingCtrl := billing.NewController(client, cfg)
	playgroundCtrl := forms.NewController()

	usersCtrl := admin.NewUsersController(client, cfg)
	sessionsCtrl := admin.NewSessionsController(container.Resolve[*repository.Sessions](application.Container, "repo.sessions"))
	subscriptionsCtrl := admin.NewSubscriptionsController(container.Resolve[*repository.Subscriptions](application.Container, "repo.subscriptions"))
	invitationsCtrl := admin.NewInvitationsController(client)
	shellCtrl := admin.NewShellController(application.Views(), application.Container)

	r := application.Router()

	// ── Public routes ────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"name": cfg.App.Name, "version": application.Version()})
	})

	r.Post("/auth/magic-link", authCtrl.RequestMagicLink)
	r.Get("/auth/magic-link/verify", authCtrl.VerifyMagicLink)

	// ── Validation playground ────────────────────────────────────────────────

	r.Prefix("/playground", func(p *routing.Router) {
		p.Post("/age", playgroundCtrl.SubmitAge)
		p.Post("/team", playgroundCtrl.SubmitTeam)
	})

	// ── Authenticated routes ─────────────────────────────────────────────────

	r.Group(func(protected *routing.Router) {
		protected.Middleware(mw.Authenticate)

		protected.Get("/dashboard", func(w http.ResponseWriter, req *http.Request) {
			rc := auth.FromRequest(req)
			gohttp.NewResponse(w).Success(map[string]any{
				"user":         rc.User,
				"impersonated": rc.Impersonated(),
			})
		})

		protected.Post("/auth/sign-out", authCtrl.SignOut)
		protected.Post("/auth/impersonate/stop", authCtrl.StopImpersonation)

		protected.Get("/orgs", orgsCtrl.Index)
		protected.Post("/orgs", orgsCtrl.Store)
		protected.Get("/invitations/{id}/accept", orgsCtrl.Accept)

		// Tenant-scoped: {org} is the organization slug.
		protected.Prefix("/orgs/{org}", func(tenant *routing.Router) {
			tenant.Middleware(mw.ResolveOrganization)

			tenant.Post("/active", orgsCtrl.SetActive)
			tenant.Get("/members", orgsCtrl.Members)
			tenant.Post("/members/{id}/remove", orgsCtrl.RemoveMember)

			tenant.Get("/invitations", orgsCtrl.Invitations)
			tenant.Post("/invitations", orgsCtrl.Invite)
			tenant.Post("/invitations/{id}/revoke", orgsCtrl.RevokeInvitation)

			tenant.Get("/billing/subscriptions", billingCtrl.Subscriptions)
			tenant.Post("/billing/subscriptions/{id}/cancel", billingCtrl.Cancel)
			tenant.Post("/billing/portal", billingCtrl.Portal)
		})
	})

	// ── Admin back-office ────────────────────────────────────────────────────

	r.Prefix("/admin", func(back *routing.Router) {
		back.Middleware(mw.Authenticate, mw.RequireAdmin)

		back.Get("/", shellCtrl.Dashboard)

		back.Resource("/users", usersCtrl)
		back.Post("/users/{id}/impersonate", usersCtrl.Impersonate)
		back.Post("/users/{id}/sessions/revoke-all", usersCtrl.RevokeSessions)

		back.Get("/sessions", sessionsCtrl.Index)
		back.Delete("/sessions/{id}", sessionsCtrl.Destroy)

		back.Get("/subscriptions", subscriptionsCtrl.Index)

		back.Get("/organizations/{id}/invitations", invitationsCtrl.Index)
		back.Post("/invitations/{id}/revoke", invitationsCtrl.Revoke)
	})

	application.Run()
}
