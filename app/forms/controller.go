package forms

import (
	"net/http"
	"strconv"

	fwapp "github.com/km-arc/go-saas-starter/framework/app"
	"github.com/km-arc/go-saas-starter/framework/http/validation"
)

// Messages the playground forms return. The age form demonstrates a
// submission that fails both at field level and at form level.
const (
	AgeFieldMessage = "Thirteen is not an accepted age."
	AgeFormMessage  = "The submission was rejected by server-side validation."
)

// Controller serves the /playground routes: small forms exercising the
// schema validator and the ErrorMap wire shape end to end.
type Controller struct {
	fwapp.Controller
}

func NewController() *Controller {
	return &Controller{}
}

// SubmitAge validates a single-field form with a server-only rule: the exact
// value 13 is rejected, producing a field entry and a form-level message in
// the same ErrorMap.
//
//	POST /playground/age  {"age": "13"}
//	→ 422 {"success":false,"errorMap":{"onSubmit":{"form":"...","fields":{"age":[{"message":"..."}]}}}}
func (c *Controller) SubmitAge(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"age": "required|integer|gte:0",
	}).Check(func(data map[string]any) []validation.Issue {
		if age, ok := data["age"]; ok && scalar(age) == "13" {
			return []validation.Issue{
				{Path: []any{"age"}, Message: AgeFieldMessage},
				{Message: AgeFormMessage},
			}
		}
		return nil
	})

	res.FormResult(s.Result())
}

// SubmitTeam validates a nested form: a team name plus a variable list of
// members. Failures inside the list come back keyed with array-index paths
// ("users[0].email").
//
//	POST /playground/team  {"name": "...", "users": [{"name": "...", "email": "..."}]}
func (c *Controller) SubmitTeam(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	values, err := req.BindMap()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	s := validation.MakeSchema(values, validation.Rules{
		"name":          "required|min:2|max:100",
		"users":         "required",
		"users.*.name":  "required|min:2",
		"users.*.email": "required|email",
	})

	res.FormResult(s.Result())
}

// scalar renders the posted value the way a form field would: JSON numbers
// and strings both compare as "13".
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int(t)) {
			return strconv.Itoa(int(t))
		}
	}
	return ""
}
