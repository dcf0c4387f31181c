package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

// SubscriptionRow is one row of the admin subscription listing.
type SubscriptionRow struct {
	ID                string     `json:"id"`
	OrganizationID    string     `json:"organizationId"`
	OrganizationName  string     `json:"organizationName"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	Seats             int        `json:"seats"`
	PeriodEnd         *time.Time `json:"periodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
}

// SubscriptionFilter narrows the subscription listing.
type SubscriptionFilter struct {
	OrganizationID string
	Status         string
}

// Subscriptions lists billing subscriptions mirrored from the service.
type Subscriptions struct {
	db *sql.DB
}

func NewSubscriptions(db *sql.DB) *Subscriptions {
	return &Subscriptions{db: db}
}

// List returns one page of subscriptions plus the unpaged total.
func (r *Subscriptions) List(ctx context.Context, filter SubscriptionFilter, page gohttp.PageRequest) ([]SubscriptionRow, int, error) {
	where, args := subscriptionWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM subscriptions b" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: count subscriptions: %w", err)
	}

	query := `SELECT b.id, b.organization_id, o.name, b.plan, b.status, b.seats,
		b.period_end, b.cancel_at_period_end
		FROM subscriptions b
		JOIN organizations o ON o.id = b.organization_id` +
		where + " ORDER BY b.period_end DESC LIMIT ? OFFSET ?"
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []SubscriptionRow
	for rows.Next() {
		var s SubscriptionRow
		var periodEnd sql.NullTime
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.OrganizationName, &s.Plan,
			&s.Status, &s.Seats, &periodEnd, &s.CancelAtPeriodEnd); err != nil {
			return nil, 0, fmt.Errorf("repository: scan subscription: %w", err)
		}
		if periodEnd.Valid {
			t := periodEnd.Time
			s.PeriodEnd = &t
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func subscriptionWhere(filter SubscriptionFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.OrganizationID != "" {
		conds = append(conds, "b.organization_id = ?")
		args = append(args, filter.OrganizationID)
	}
	if filter.Status != "" {
		conds = append(conds, "b.status = ?")
		args = append(args, filter.Status)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
