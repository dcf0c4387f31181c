// Package http provides Laravel-style Request and Response wrappers around
// net/http, plus pagination parsing and the request-ID / request-logging
// middleware used by the application kernel.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//	var body struct{ Email string `json:"email"` }
//	_ = req.Bind(&body)          // JSON or form bodies → struct
//	values, _ := req.BindMap()   // nested map for the schema validator
//	token := req.BearerToken()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(user)                       // 200 {"data": ...}
//	res.Paginated(rows, page.Meta(total))   // 200 {"data": ..., "meta": ...}
//	res.FormResult(schema.Result())         // 200 / 422 form envelope
//	res.Forbidden()                         // 403 {"message": ...}
//
// # Pagination
//
//	page := gohttp.ParsePage(r) // ?page=2&per_page=50, clamped
package http
