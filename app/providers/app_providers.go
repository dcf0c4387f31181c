// Package providers wires the application services into the container.
package providers

import (
	"database/sql"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"

	"github.com/km-arc/go-saas-starter/app/admin"
	"github.com/km-arc/go-saas-starter/app/authkit"
	"github.com/km-arc/go-saas-starter/app/mail"
	"github.com/km-arc/go-saas-starter/app/repository"
	"github.com/km-arc/go-saas-starter/framework/config"
	"github.com/km-arc/go-saas-starter/framework/container"
)

// ── DatabaseServiceProvider ───────────────────────────────────────────────────

// DatabaseServiceProvider opens the connection pool for the repository layer.
//
// Bound abstracts:
//   - "db" → *sql.DB
type DatabaseServiceProvider struct {
	container.BaseProvider
}

func (p *DatabaseServiceProvider) Register(app *container.Container) {
	app.Singleton("db", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		db, err := sql.Open(cfg.DB.Driver, cfg.DB.DSN())
		if err != nil {
			panic("database: " + err.Error())
		}
		db.SetMaxOpenConns(config.GetInt("DB_MAX_OPEN_CONNS", 25))
		db.SetMaxIdleConns(config.GetInt("DB_MAX_IDLE_CONNS", 5))
		return db
	})
}

// ── AuthKitServiceProvider ────────────────────────────────────────────────────

// AuthKitServiceProvider binds the auth+billing service client.
//
// Bound abstracts:
//   - "authkit" → *authkit.Client
type AuthKitServiceProvider struct {
	container.BaseProvider
}

func (p *AuthKitServiceProvider) Register(app *container.Container) {
	app.Singleton("authkit", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return authkit.New(cfg.AuthService)
	})
}

// ── MailServiceProvider ───────────────────────────────────────────────────────

// MailServiceProvider binds the mailer. In the local environment the
// binding is extended with the debug decorator so every outgoing message
// shows up in the log.
//
// Bound abstracts:
//   - "mailer" → mail.Mailer   (aliased as "mail")
type MailServiceProvider struct {
	container.BaseProvider
}

func (p *MailServiceProvider) Register(app *container.Container) {
	app.Singleton("mailer", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		logger := container.Resolve[*slog.Logger](c, "logger")
		return mail.FromConfig(cfg.Mail, logger)
	})
	app.Alias("mailer", "mail")
}

func (p *MailServiceProvider) Boot(app *container.Container) {
	cfg := container.Resolve[*config.Config](app, "config")
	if cfg.App.Env != "local" {
		return
	}
	app.Extend("mailer", func(instance any, c *container.Container) any {
		logger := container.Resolve[*slog.Logger](c, "logger")
		return mail.NewDebug(instance.(mail.Mailer), logger)
	})
}

// ── RepositoryServiceProvider ─────────────────────────────────────────────────

// RepositoryServiceProvider binds the query layer over the relational store.
//
// Bound abstracts:
//   - "repo.sessions"      → *repository.Sessions
//   - "repo.subscriptions" → *repository.Subscriptions
type RepositoryServiceProvider struct {
	container.BaseProvider
}

func (p *RepositoryServiceProvider) Register(app *container.Container) {
	app.Singleton("repo.sessions", func(c *container.Container) any {
		return repository.NewSessions(container.Resolve[*sql.DB](c, "db"))
	})
	app.Singleton("repo.subscriptions", func(c *container.Container) any {
		return repository.NewSubscriptions(container.Resolve[*sql.DB](c, "db"))
	})
}

// ── AdminServiceProvider ──────────────────────────────────────────────────────

// AdminServiceProvider registers the back-office screens. Each screen is its
// own binding, grouped under the "admin.screens" tag; the shell's sidebar
// renders whatever the tag resolves to.
type AdminServiceProvider struct {
	container.BaseProvider
}

func (p *AdminServiceProvider) Register(app *container.Container) {
	app.Instance("admin.screen.users", admin.Screen{Title: "Users", Path: "/admin/users", Icon: "users"})
	app.Instance("admin.screen.sessions", admin.Screen{Title: "Sessions", Path: "/admin/sessions", Icon: "clock"})
	app.Instance("admin.screen.subscriptions", admin.Screen{Title: "Subscriptions", Path: "/admin/subscriptions", Icon: "credit-card"})

	app.Tag([]string{
		"admin.screen.users",
		"admin.screen.sessions",
		"admin.screen.subscriptions",
	}, "admin.screens")
}
