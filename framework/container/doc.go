// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the application's
// dependencies: the config, the router, the database pool, the auth-service
// client, repositories, the mailer. It supports transient bindings,
// singletons, pre-built instances, aliases, tags, contextual bindings, and
// extension (decoration).
//
// It mirrors the public API of Laravel's Illuminate\Container\Container as
// closely as Go's type system allows. Because Go has no runtime constructor
// reflection, auto-wiring is replaced by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MailServiceProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("repo.sessions", func(c *container.Container) any {
//	    return repository.NewSessions(container.Resolve[*sql.DB](c, "db"))
//	})
//
//	// Singleton — created once, reused
//	c.Singleton("authkit", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return authkit.New(cfg.AuthService)
//	})
//
//	// Pre-built value
//	c.Instance("config", myConfig)
//
//	// Alias
//	c.Alias("mailer", "mail")
//
// # Resolving
//
//	// Untyped
//	raw := c.Make("mailer")
//
//	// Generic (preferred — no type assertion required)
//	mailer := container.Resolve[mail.Mailer](c, "mailer")
//
// # Tags
//
// The admin back-office registers each of its screens as a binding and tags
// them under "admin.screens"; the sidebar is rendered from Tagged().
//
// # Extend
//
// In the local environment the mailer binding is wrapped with a debug
// decorator via Extend() so outgoing magic-link mail is logged instead of
// silently delivered.
package container
