package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/km-arc/go-saas-starter/app/auth"
	"github.com/km-arc/go-saas-starter/app/authkit"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/config"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/http/validation"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// UsersController is the user back-office. It satisfies
// routing.ResourceController so the whole surface mounts with one
// router.Resource call; the two REST verbs the auth service does not
// support (create, delete) answer 405.
type UsersController struct {
	fwapp.Controller
	client *authkit.Client
	cfg    *config.Config
}

func NewUsersController(client *authkit.Client, cfg *config.Config) *UsersController {
	return &UsersController{client: client, cfg: cfg}
}

// Index lists users with search, ban filtering and pagination.
//
//	GET /admin/users?search=alice&banned=true&page=2&per_page=50
func (c *UsersController) Index(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	page := gohttp.ParsePage(r)

	params := authkit.ListUsersParams{
		Search:  req.Query("search"),
		Page:    page.Page,
		PerPage: page.PerPage,
	}
	if raw := req.Query("banned"); raw != "" {
		banned, err := strconv.ParseBool(raw)
		if err != nil {
			res.Error(http.StatusBadRequest, "banned must be true or false.")
			return
		}
		params.Banned = &banned
	}

	users, err := c.client.Users.List(r.Context(), params)
	if err != nil {
		res.BadGateway()
		return
	}
	res.Paginated(users.Users, page.Meta(users.Total))
}

// Store — users sign themselves up through magic links.
func (c *UsersController) Store(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Error(http.StatusMethodNotAllowed, "Users are created through sign-in.")
}

// Show returns one user.
//
//	GET /admin/users/{id}
func (c *UsersController) Show(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	user, err := c.client.Users.Get(r.Context(), routing.Param(r, "id"))
	if err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.Success(user)
}

// Update toggles the ban state.
//
//	PATCH /admin/users/{id}  {"banned": "true", "reason": "abuse", "expires_in": "86400"}
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"banned":     "required|boolean",
		"reason":     "sometimes|max:500",
		"expires_in": "sometimes|integer|gte:0",
	})
	if s.Fails() {
		res.FormResult(s.Result())
		return
	}

	id := routing.Param(r, "id")
	banned, _ := strconv.ParseBool(stringValue(values["banned"]))

	var user *authkit.User
	if banned {
		expiresIn, _ := strconv.Atoi(stringValue(values["expires_in"]))
		user, err = c.client.Users.Ban(r.Context(), id, authkit.BanParams{
			Reason:           stringValue(values["reason"]),
			ExpiresInSeconds: expiresIn,
		})
	} else {
		user, err = c.client.Users.Unban(r.Context(), id)
	}
	if err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.Success(user)
}

// Destroy — accounts are never hard-deleted; ban instead.
func (c *UsersController) Destroy(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Error(http.StatusMethodNotAllowed, "Users cannot be deleted; ban them instead.")
}

// ── Extra actions ────────────────────────────────────────────────────────────

// Impersonate opens an impersonated session for the target user and swaps
// the admin's cookie to it.
//
//	POST /admin/users/{id}/impersonate
func (c *UsersController) Impersonate(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	rc := auth.FromRequest(r)

	if rc.Impersonated() {
		res.Forbidden("Already impersonating; stop first.")
		return
	}

	env, err := c.client.Impersonation.Start(r.Context(), rc.Session.Token, routing.Param(r, "id"))
	if err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}

	res.SetCookie(&http.Cookie{
		Name:     c.cfg.Session.CookieName,
		Value:    env.Session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	res.RedirectTo("/dashboard")
}

// RevokeSessions ends every session of the target user.
//
//	POST /admin/users/{id}/sessions/revoke-all
func (c *UsersController) RevokeSessions(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	if err := c.client.Sessions.RevokeAll(r.Context(), routing.Param(r, "id")); err != nil {
		if authkit.IsNotFound(err) {
			res.NotFound()
			return
		}
		res.BadGateway()
		return
	}
	res.NoContent()
}

// stringValue renders a bound JSON value the way a form would post it, so
// {"banned": true} and {"banned": "true"} behave identically.
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
