package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/app/mail"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/config"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/http/validation"
)

// Controller handles sign-in, sign-out and impersonation hand-back.
type Controller struct {
	fwapp.Controller
	client *authkit.Client
	mailer mail.Mailer
	cfg    *config.Config
	logger *slog.Logger
}

func NewController(client *authkit.Client, mailer mail.Mailer, cfg *config.Config, logger *slog.Logger) *Controller {
	return &Controller{client: client, mailer: mailer, cfg: cfg, logger: logger}
}

// RequestMagicLink is the action behind the sign-in form. It validates the
// address, asks the service for a one-time token, and emails the link. The
// response shape is identical whether or not the address is known — account
// enumeration stays impossible.
//
//	POST /auth/magic-link  {"email": "alice@example.com"}
func (c *Controller) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"email": "required|email",
	})
	if s.Fails() {
		res.FormResult(s.Result())
		return
	}

	email, _ := values["email"].(string)
	link, err := c.client.MagicLinks.Create(r.Context(), email)
	if err != nil {
		res.BadGateway()
		return
	}

	verifyURL := c.cfg.App.URL + "/auth/magic-link/verify?token=" + url.QueryEscape(link.Token)
	msg := mail.Message{
		To:      email,
		Subject: fmt.Sprintf("Sign in to %s", c.cfg.App.Name),
		Body:    fmt.Sprintf("Follow this link to sign in:\n\n%s\n\nThe link can be used once and expires shortly.", verifyURL),
	}
	if err := c.mailer.Send(msg); err != nil {
		c.logger.Error("magic link mail failed", slog.String("email", email), slog.Any("error", err))
		res.ServerError("Could not send the sign-in mail.")
		return
	}

	res.FormResult(validation.Ok())
}

// VerifyMagicLink is the loader the emailed link points at. A good token
// becomes a session cookie and a redirect to the dashboard; a bad one
// bounces back to sign-in.
//
//	GET /auth/magic-link/verify?token=...
func (c *Controller) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	token := req.Query("token")
	if token == "" {
		res.RedirectTo("/sign-in?error=missing_token")
		return
	}

	env, err := c.client.MagicLinks.Verify(r.Context(), token, req.IP(), req.Header("User-Agent"))
	if err != nil {
		if authkit.IsUnauthorized(err) {
			res.RedirectTo("/sign-in?error=invalid_link")
			return
		}
		res.BadGateway()
		return
	}

	c.setSessionCookie(res, env.Session.Token)
	res.RedirectTo("/dashboard")
}

// SignOut revokes the session and clears the cookie.
//
//	POST /auth/sign-out
func (c *Controller) SignOut(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := FromRequest(r)

	if rc != nil {
		if err := c.client.Sessions.Revoke(r.Context(), rc.Session.Token); err != nil {
			c.logger.Warn("session revoke failed", slog.Any("error", err))
		}
	}

	c.clearSessionCookie(res)
	res.RedirectTo("/sign-in")
}

// StopImpersonation ends an impersonated session and restores the admin's
// own session cookie.
//
//	POST /auth/impersonate/stop
func (c *Controller) StopImpersonation(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := FromRequest(r)

	if rc == nil || !rc.Impersonated() {
		res.Forbidden("Not impersonating.")
		return
	}

	env, err := c.client.Impersonation.Stop(r.Context(), rc.Session.Token)
	if err != nil {
		res.BadGateway()
		return
	}

	c.setSessionCookie(res, env.Session.Token)
	res.RedirectTo("/admin/users")
}

// ── cookies ──────────────────────────────────────────────────────────────────

func (c *Controller) setSessionCookie(res *gohttp.Response, token string) {
	res.SetCookie(&http.Cookie{
		Name:     c.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Controller) clearSessionCookie(res *gohttp.Response) {
	res.SetCookie(&http.Cookie{
		Name:     c.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
