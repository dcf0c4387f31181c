package admin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/km-arc/go-saas-starter/app/admin"
	"github.com/km-arc/go-saas-starter/app/repository"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

func subscriptionRouter(t *testing.T) (*routing.Router, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	c := admin.NewSubscriptionsController(repository.NewSubscriptions(db))
	r := routing.New()
	r.Get("/admin/subscriptions", c.Index)
	return r, mock
}

func TestSubscriptionsIndex(t *testing.T) {
	r, mock := subscriptionRouter(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM subscriptions b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM subscriptions b").
		WithArgs(25, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "name", "plan", "status", "seats", "period_end", "cancel_at_period_end",
		}).AddRow("sub_1", "org_1", "Acme", "pro", "active", 10, nil, false))

	req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	var body map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if meta := body["meta"].(map[string]any); meta["total"] != float64(1) {
		t.Errorf("meta: got %v", meta)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubscriptionsIndex_StatusFilter(t *testing.T) {
	r, mock := subscriptionRouter(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM subscriptions b WHERE b.organization_id = \\? AND b.status = \\?").
		WithArgs("org_1", "canceled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM subscriptions b").
		WithArgs("org_1", "canceled", 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "name", "plan", "status", "seats", "period_end", "cancel_at_period_end",
		}))

	req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions?org=org_1&status=canceled", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubscriptionsIndex_UnknownStatus(t *testing.T) {
	r, _ := subscriptionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions?status=lapsed", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
	var body map[string]any
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["message"] != "The selected status is invalid." {
		t.Errorf("message: got %v", body["message"])
	}
}
