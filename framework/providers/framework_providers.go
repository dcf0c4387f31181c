package providers

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/km-arc/go-saas-starter/framework/config"
	"github.com/km-arc/go-saas-starter/framework/container"
	gohttp "github.com/km-arc/go-saas-starter/framework/http"
	"github.com/km-arc/go-saas-starter/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env (and an
// optional override file) and binds it into the container as "config".
//
// Bound abstracts:
//   - "config" → *config.Config
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles     []string
	OverrideFile string // optional config.yaml / config.toml / config.json
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	overrideFile := p.OverrideFile

	app.Singleton("config", func(c *container.Container) any {
		// Non-fatal: .env may not exist in production
		_ = godotenv.Load(envFiles...)
		cfg := config.Load()
		if overrideFile != "" {
			if err := cfg.Override(overrideFile); err != nil {
				slog.Warn("config override failed", slog.String("file", overrideFile), slog.Any("error", err))
			}
		}
		return cfg
	})
	app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds the structured logger.
//
// Bound abstracts:
//   - "logger" → *slog.Logger
//
// Text output in local/testing, JSON in production; debug level follows
// APP_DEBUG.
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("logger", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")

		level := slog.LevelInfo
		if cfg.App.Debug {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{Level: level}

		var handler slog.Handler
		if cfg.App.Env == "production" {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		return slog.New(handler).With(slog.String("app", cfg.App.Name))
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and, at boot, attaches the
// request-ID and request-logging middleware (before any routes exist).
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New()
	})
}

func (p *RoutingServiceProvider) Boot(app *container.Container) {
	router := container.Resolve[*routing.Router](app, "router")
	logger := container.Resolve[*slog.Logger](app, "logger")
	router.Middleware(gohttp.RequestID, gohttp.RequestLogger(logger))
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine used by the admin shell.
//
// Bound abstracts:
//   - "view" → *gohttp.ViewEngine
type ViewServiceProvider struct {
	container.BaseProvider
	Dir string // template directory, default: "./views"
	Ext string // file extension,    default: ".html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	dir := p.Dir
	if dir == "" {
		dir = "./views"
	}
	ext := p.Ext
	if ext == "" {
		ext = ".html"
	}

	app.Singleton("view", func(c *container.Container) any {
		return gohttp.NewViewEngine(dir, ext)
	})
}
