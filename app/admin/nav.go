// Package admin is the back-office: user, session, subscription and
// invitation listings with pagination and filtering, served as JSON tables
// inside an HTML shell. Every route runs behind Authenticate + RequireAdmin.
package admin

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/auth"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/container"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

// Screen is one sidebar entry of the admin shell. Screens are bound in the
// container and tagged "admin.screens"; the sidebar renders whatever is
// tagged, so dropping a screen in is one provider line.
type Screen struct {
	Title string
	Path  string
	Icon  string
}

// Sidebar collects the tagged screens in registration order.
func Sidebar(c *container.Container) []Screen {
	tagged := c.Tagged("admin.screens")
	screens := make([]Screen, 0, len(tagged))
	for _, t := range tagged {
		if s, ok := t.(Screen); ok {
			screens = append(screens, s)
		}
	}
	return screens
}

// ShellController renders the HTML frame the back-office tables live in.
type ShellController struct {
	fwapp.Controller
	views     *gohttp.ViewEngine
	container *container.Container
}

func NewShellController(views *gohttp.ViewEngine, c *container.Container) *ShellController {
	return &ShellController{views: views, container: c}
}

// Dashboard renders the admin landing screen inside the shared layout.
//
//	GET /admin
func (c *ShellController) Dashboard(w http.ResponseWriter, r *http.Request) {
	rc := auth.FromRequest(r)
	c.views.ViewWithLayout(w, "admin/layout", "admin/dashboard", map[string]any{
		"Title":   "Dashboard",
		"Screens": Sidebar(c.container),
		"User":    rc.User,
	})
}
