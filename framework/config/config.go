package config

import (
	"os"
	"strconv"
)

// Config is the central typed configuration struct.
// Loaded once at bootstrap from .env, optionally overridden by a config file
// (see Override).
type Config struct {
	App         AppConfig
	DB          DBConfig
	Mail        MailConfig
	AuthService AuthServiceConfig
	Billing     BillingConfig
	Session     SessionConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Port  string
	Key   string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

type MailConfig struct {
	Driver string // smtp | log
	Host   string
	Port   string
	From   string
}

// AuthServiceConfig points at the external auth+billing service.
type AuthServiceConfig struct {
	URL    string // base URL of the service API
	Secret string // server-side API secret
}

// BillingConfig configures the billing portal handoff.
type BillingConfig struct {
	ReturnURL string // where the portal sends the user back to
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// Load populates a Config from environment variables. Callers that want .env
// files loaded should go through the ConfigServiceProvider, which runs
// godotenv first.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "SaaS Starter"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			URL:   env("APP_URL", "http://localhost:8000"),
			Port:  env("APP_PORT", "8000"),
			Key:   env("APP_KEY", ""),
		},
		DB: DBConfig{
			Driver:   env("DB_DRIVER", "mysql"),
			Host:     env("DB_HOST", "127.0.0.1"),
			Port:     env("DB_PORT", "3306"),
			Database: env("DB_DATABASE", ""),
			Username: env("DB_USERNAME", "root"),
			Password: env("DB_PASSWORD", ""),
		},
		Mail: MailConfig{
			Driver: env("MAIL_DRIVER", "smtp"),
			Host:   env("MAIL_HOST", ""),
			Port:   env("MAIL_PORT", "587"),
			From:   env("MAIL_FROM_ADDRESS", ""),
		},
		AuthService: AuthServiceConfig{
			URL:    env("AUTH_SERVICE_URL", "http://127.0.0.1:9000"),
			Secret: env("AUTH_SERVICE_SECRET", ""),
		},
		Billing: BillingConfig{
			ReturnURL: env("BILLING_RETURN_URL", env("APP_URL", "http://localhost:8000")+"/billing"),
		},
		Session: SessionConfig{
			CookieName: env("SESSION_COOKIE", "saas_session"),
			Secure:     envBool("SESSION_SECURE", false),
		},
	}
}

// DSN returns the database/sql connection string for the configured driver.
func (c DBConfig) DSN() string {
	// go-sql-driver/mysql format: user:pass@tcp(host:port)/dbname?parseTime=true
	return c.Username + ":" + c.Password + "@tcp(" + c.Host + ":" + c.Port + ")/" + c.Database + "?parseTime=true"
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
