package http

import (
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// PageRequest is the parsed pagination input of a listing endpoint.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the row offset for SQL-style queries.
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// PageMeta is the pagination block of a listing response.
type PageMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// Meta builds the response meta for this request.
func (p PageRequest) Meta(total int) PageMeta {
	return PageMeta{Page: p.Page, PerPage: p.PerPage, Total: total}
}

// ParsePage reads ?page and ?per_page, clamping to sane bounds
// (page ≥ 1, 1 ≤ per_page ≤ 100, default 25).
func ParsePage(r *http.Request) PageRequest {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return PageRequest{Page: page, PerPage: perPage}
}
