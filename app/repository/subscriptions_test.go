package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/km-arc/go-saas-starter/app/repository"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

func TestSubscriptions_List(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSubscriptions(db)

	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM subscriptions b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("FROM subscriptions b\\s+JOIN organizations o").
		WithArgs(25, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "name", "plan", "status", "seats", "period_end", "cancel_at_period_end",
		}).
			AddRow("sub_1", "org_1", "Acme", "pro", "active", 10, periodEnd, false).
			AddRow("sub_2", "org_2", "Globex", "free", "trialing", 1, nil, false))

	rows, total, err := repo.List(context.Background(), repository.SubscriptionFilter{}, gohttp.PageRequest{Page: 1, PerPage: 25})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("got total=%d rows=%d", total, len(rows))
	}
	if rows[0].PeriodEnd == nil || !rows[0].PeriodEnd.Equal(periodEnd) {
		t.Errorf("period_end: got %v", rows[0].PeriodEnd)
	}
	if rows[1].PeriodEnd != nil {
		t.Errorf("NULL period_end must map to nil, got %v", rows[1].PeriodEnd)
	}
	if rows[0].OrganizationName != "Acme" {
		t.Errorf("join column: got %q", rows[0].OrganizationName)
	}
	expectationsMet(t, mock)
}

func TestSubscriptions_List_StatusFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewSubscriptions(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM subscriptions b WHERE b.organization_id = \\? AND b.status = \\?").
		WithArgs("org_1", "canceled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM subscriptions b").
		WithArgs("org_1", "canceled", 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_id", "name", "plan", "status", "seats", "period_end", "cancel_at_period_end",
		}))

	rows, total, err := repo.List(context.Background(),
		repository.SubscriptionFilter{OrganizationID: "org_1", Status: "canceled"},
		gohttp.PageRequest{Page: 1, PerPage: 25})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("got total=%d rows=%d", total, len(rows))
	}
	expectationsMet(t, mock)
}
