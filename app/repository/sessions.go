// Package repository is a thin query layer over the relational store for
// entities the application lists directly instead of round-tripping through
// the auth service: sessions and subscriptions. The service owns the writes;
// this layer only reads (and deletes, for session revocation).
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	gohttp "github.com/km-arc/go-saas-starter/framework/http"
)

// SessionRow is one row of the admin session listing.
type SessionRow struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserEmail      string    `json:"userEmail"`
	IPAddress      string    `json:"ipAddress"`
	UserAgent      string    `json:"userAgent"`
	ImpersonatedBy string    `json:"impersonatedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// SessionFilter narrows the session listing.
type SessionFilter struct {
	UserID     string
	ActiveOnly bool
}

// Sessions lists and deletes sessions.
type Sessions struct {
	db *sql.DB
}

func NewSessions(db *sql.DB) *Sessions {
	return &Sessions{db: db}
}

// List returns one page of sessions plus the unpaged total.
func (r *Sessions) List(ctx context.Context, filter SessionFilter, page gohttp.PageRequest) ([]SessionRow, int, error) {
	where, args := sessionWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM sessions s" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: count sessions: %w", err)
	}

	query := `SELECT s.id, s.user_id, u.email, s.ip_address, s.user_agent,
		COALESCE(s.impersonated_by, ''), s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id` +
		where + " ORDER BY s.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, page.PerPage, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.UserEmail, &s.IPAddress, &s.UserAgent,
			&s.ImpersonatedBy, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, 0, fmt.Errorf("repository: scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// Delete removes a session row, ending that session.
func (r *Sessions) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("repository: delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func sessionWhere(filter SessionFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.UserID != "" {
		conds = append(conds, "s.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.ActiveOnly {
		conds = append(conds, "s.expires_at > NOW()")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
