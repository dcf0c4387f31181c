package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with optional fields so that only keys present in
// the file override the env-derived values. Format is auto-detected from the
// extension (.yaml/.yml, .json, .toml).
type fileConfig struct {
	App struct {
		Name  *string `yaml:"name" toml:"name" json:"name"`
		Env   *string `yaml:"env" toml:"env" json:"env"`
		Debug *bool   `yaml:"debug" toml:"debug" json:"debug"`
		URL   *string `yaml:"url" toml:"url" json:"url"`
		Port  *string `yaml:"port" toml:"port" json:"port"`
	} `yaml:"app" toml:"app" json:"app"`
	DB struct {
		Driver   *string `yaml:"driver" toml:"driver" json:"driver"`
		Host     *string `yaml:"host" toml:"host" json:"host"`
		Port     *string `yaml:"port" toml:"port" json:"port"`
		Database *string `yaml:"database" toml:"database" json:"database"`
		Username *string `yaml:"username" toml:"username" json:"username"`
		Password *string `yaml:"password" toml:"password" json:"password"`
	} `yaml:"db" toml:"db" json:"db"`
	Mail struct {
		Driver *string `yaml:"driver" toml:"driver" json:"driver"`
		Host   *string `yaml:"host" toml:"host" json:"host"`
		Port   *string `yaml:"port" toml:"port" json:"port"`
		From   *string `yaml:"from" toml:"from" json:"from"`
	} `yaml:"mail" toml:"mail" json:"mail"`
	AuthService struct {
		URL    *string `yaml:"url" toml:"url" json:"url"`
		Secret *string `yaml:"secret" toml:"secret" json:"secret"`
	} `yaml:"auth_service" toml:"auth_service" json:"auth_service"`
	Billing struct {
		ReturnURL *string `yaml:"return_url" toml:"return_url" json:"return_url"`
	} `yaml:"billing" toml:"billing" json:"billing"`
	Session struct {
		CookieName *string `yaml:"cookie_name" toml:"cookie_name" json:"cookie_name"`
		Secure     *bool   `yaml:"secure" toml:"secure" json:"secure"`
	} `yaml:"session" toml:"session" json:"session"`
}

// Override applies a config file on top of cfg. Missing files are not an
// error (the file is an optional local override); parse failures are.
//
//	cfg := config.Load()
//	if err := cfg.Override("config.yaml"); err != nil { ... }
func (c *Config) Override(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &fc)
	case ".toml":
		err = toml.Unmarshal(raw, &fc)
	case ".json":
		err = json.Unmarshal(raw, &fc)
	default:
		return fmt.Errorf("config: unsupported config file format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	c.apply(&fc)
	return nil
}

// apply copies every present (non-nil) file value onto the Config.
func (c *Config) apply(fc *fileConfig) {
	setStr(&c.App.Name, fc.App.Name)
	setStr(&c.App.Env, fc.App.Env)
	setBool(&c.App.Debug, fc.App.Debug)
	setStr(&c.App.URL, fc.App.URL)
	setStr(&c.App.Port, fc.App.Port)

	setStr(&c.DB.Driver, fc.DB.Driver)
	setStr(&c.DB.Host, fc.DB.Host)
	setStr(&c.DB.Port, fc.DB.Port)
	setStr(&c.DB.Database, fc.DB.Database)
	setStr(&c.DB.Username, fc.DB.Username)
	setStr(&c.DB.Password, fc.DB.Password)

	setStr(&c.Mail.Driver, fc.Mail.Driver)
	setStr(&c.Mail.Host, fc.Mail.Host)
	setStr(&c.Mail.Port, fc.Mail.Port)
	setStr(&c.Mail.From, fc.Mail.From)

	setStr(&c.AuthService.URL, fc.AuthService.URL)
	setStr(&c.AuthService.Secret, fc.AuthService.Secret)

	setStr(&c.Billing.ReturnURL, fc.Billing.ReturnURL)

	setStr(&c.Session.CookieName, fc.Session.CookieName)
	setBool(&c.Session.Secure, fc.Session.Secure)
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
