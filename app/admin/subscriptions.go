package admin

import (
	"net/http"

	"github.com/km-arc/go-saas-starter/app/repository"
	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

// SubscriptionsController lists subscriptions from the repository.
type SubscriptionsController struct {
	fwapp.Controller
	repo *repository.Subscriptions
}

func NewSubscriptionsController(repo *repository.Subscriptions) *SubscriptionsController {
	return &SubscriptionsController{repo: repo}
}

// Index lists subscriptions, filterable by status and organization.
//
//	GET /admin/subscriptions?status=active&org=abc&page=1
func (c *SubscriptionsController) Index(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)
	page := gohttp.ParsePage(r)

	status := req.Query("status")
	switch status {
	case "", "active", "trialing", "canceled", "past_due":
	default:
		res.Error(http.StatusBadRequest, "The selected status is invalid.")
		return
	}

	filter := repository.SubscriptionFilter{
		OrganizationID: req.Query("org"),
		Status:         status,
	}

	rows, total, err := c.repo.List(r.Context(), filter, page)
	if err != nil {
		res.ServerError()
		return
	}
	res.Paginated(rows, page.Meta(total))
}
