package admin

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/km-arc/go-saas-starter/app/repository"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// SessionsController lists and revokes sessions from the repository.
type SessionsController struct {
	fwapp.Controller
	repo *repository.Sessions
}

func NewSessionsController(repo *repository.Sessions) *SessionsController {
	return &SessionsController{repo: repo}
}

// Index lists sessions, filterable by user and activity.
//
//	GET /admin/sessions?user=abc&active=true&page=1
func (c *SessionsController) Index(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	page := gohttp.ParsePage(r)

	filter := repository.SessionFilter{UserID: req.Query("user")}
	if raw := req.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			res.Error(http.StatusBadRequest, "active must be true or false.")
			return
		}
		filter.ActiveOnly = active
	}

	rows, total, err := c.repo.List(r.Context(), filter, page)
	if err != nil {
		res.ServerError()
		return
	}
	res.Paginated(rows, page.Meta(total))
}

// Destroy revokes one session.
//
//	DELETE /admin/sessions/{id}
func (c *SessionsController) Destroy(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)

	if err := c.repo.Delete(r.Context(), routing.Param(r, "id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			res.NotFound()
			return
		}
		res.ServerError()
		return
	}
	res.NoContent()
}
