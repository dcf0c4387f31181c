package authkit

import "time"

// User is an account at the auth service.
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"` // "user" | "admin"
	Banned     bool       `json:"banned"`
	BanReason  string     `json:"banReason,omitempty"`
	BanExpires *time.Time `json:"banExpires,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == "admin" }

// Session is an authenticated browser session.
type Session struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Token                string    `json:"token"`
	IPAddress            string    `json:"ipAddress,omitempty"`
	UserAgent            string    `json:"userAgent,omitempty"`
	ExpiresAt            time.Time `json:"expiresAt"`
	ActiveOrganizationID string    `json:"activeOrganizationId,omitempty"`
	ImpersonatedBy       string    `json:"impersonatedBy,omitempty"`
}

// Impersonated reports whether this session was started by an admin
// impersonating the user.
func (s *Session) Impersonated() bool { return s != nil && s.ImpersonatedBy != "" }

// Organization is a tenant.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member ties a user to an organization with a role.
type Member struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	OrganizationID string    `json:"organizationId"`
	Role           string    `json:"role"` // "owner" | "admin" | "member"
	User           *User     `json:"user,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Invitation is a pending organization invite.
type Invitation struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Status         string    `json:"status"` // "pending" | "accepted" | "revoked" | "expired"
	InviterID      string    `json:"inviterId"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Subscription is a billing subscription owned by an organization.
type Subscription struct {
	ID                string     `json:"id"`
	OrganizationID    string     `json:"organizationId"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"` // "active" | "trialing" | "canceled" | "past_due"
	PeriodEnd         *time.Time `json:"periodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
	Seats             int        `json:"seats,omitempty"`
}

// SessionEnvelope is the session+user pair most auth endpoints return.
type SessionEnvelope struct {
	Session *Session `json:"session"`
	User    *User    `json:"user"`
}
