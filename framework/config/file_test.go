package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-saas-starter/framework/config"
)

// writeFile drops a config file into a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func baseConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "SaaS Starter", Env: "local", Debug: true, Port: "8000"},
		AuthService: config.AuthServiceConfig{
			URL:    "http://127.0.0.1:9000",
			Secret: "from-env",
		},
		Session: config.SessionConfig{CookieName: "saas_session"},
	}
}

func TestOverride_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
app:
  name: Acme
  env: production
  debug: false
auth_service:
  url: https://auth.internal
session:
  secure: true
`)

	cfg := baseConfig()
	require.NoError(t, cfg.Override(path))

	assert.Equal(t, "Acme", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "https://auth.internal", cfg.AuthService.URL)
	assert.True(t, cfg.Session.Secure)

	// Keys absent from the file keep their env-derived values.
	assert.Equal(t, "from-env", cfg.AuthService.Secret)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "saas_session", cfg.Session.CookieName)
}

func TestOverride_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[app]
name = "Acme"
port = "9090"

[billing]
return_url = "https://app.acme.com/billing"
`)

	cfg := baseConfig()
	require.NoError(t, cfg.Override(path))

	assert.Equal(t, "Acme", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "https://app.acme.com/billing", cfg.Billing.ReturnURL)
	assert.Equal(t, "local", cfg.App.Env)
}

func TestOverride_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "app": {"name": "Acme"},
  "session": {"cookie_name": "acme_session"}
}`)

	cfg := baseConfig()
	require.NoError(t, cfg.Override(path))

	assert.Equal(t, "Acme", cfg.App.Name)
	assert.Equal(t, "acme_session", cfg.Session.CookieName)
}

func TestOverride_MissingFileIsNotAnError(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, cfg.Override(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Equal(t, "SaaS Starter", cfg.App.Name)
}

func TestOverride_ParseFailure(t *testing.T) {
	path := writeFile(t, "config.yaml", "app: [not: valid: yaml")
	assert.Error(t, baseConfig().Override(path))
}

func TestOverride_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "config.ini", "[app]\nname=Acme")
	assert.Error(t, baseConfig().Override(path))
}
