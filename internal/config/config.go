// Package config loads talenthub settings from an optional YAML file, a
// .env file and TALENTHUB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/talenthub/internal/api"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TALENTHUB_API_BASE_URL for api.base_url.
const EnvPrefix = "TALENTHUB"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env    string `mapstructure:"env"`    // local, dev or production
	Player string `mapstructure:"player"` // name attempts are journaled under
	API    API    `mapstructure:"api"`
	Render Render `mapstructure:"render"`
	Log    Log    `mapstructure:"log"`
	Server Server `mapstructure:"server"`
	DB     DB     `mapstructure:"db"`
}

// API configures the paper service client.
type API struct {
	BaseURL        string        `mapstructure:"base_url"`
	DirectLoginURL string        `mapstructure:"direct_login_url"`
	Token          string        `mapstructure:"token"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PresetTimeout  time.Duration `mapstructure:"preset_timeout"`
	LoginTimeout   time.Duration `mapstructure:"login_timeout"`
}

// Render configures question layout.
type Render struct {
	DecimalHeuristic bool `mapstructure:"decimal_heuristic"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // json or console
	File   string `mapstructure:"file"`   // TUI log sink; empty discards TUI logs
}

// Server configures the local JSON API.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// DB configures the local journal.
type DB struct {
	Path string `mapstructure:"path"` // empty resolves to the XDG data dir
}

// Load reads configuration from file (or the default search path when file
// is empty), a .env file in the working directory and the environment.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "talenthub"))
		}
		v.AddConfigPath(".")
	}

	d := api.DefaultConfig()
	v.SetDefault("env", "local")
	v.SetDefault("player", "local")
	v.SetDefault("api.base_url", d.BaseURL)
	v.SetDefault("api.direct_login_url", d.DirectLoginURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", d.Timeout)
	v.SetDefault("api.preset_timeout", d.PresetTimeout)
	v.SetDefault("api.login_timeout", d.LoginTimeout)
	v.SetDefault("render.decimal_heuristic", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", "127.0.0.1:8081")
	v.SetDefault("db.path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the service URLs, timeouts and log settings.
func (c *Config) Validate() error {
	if err := checkURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.DirectLoginURL != "" {
		if err := checkURL("api.direct_login_url", c.API.DirectLoginURL); err != nil {
			return err
		}
	}
	for key, d := range map[string]time.Duration{
		"api.timeout":        c.API.Timeout,
		"api.preset_timeout": c.API.PresetTimeout,
		"api.login_timeout":  c.API.LoginTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("config %s must be positive, got %s", key, d)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config log.format %q is not one of json, console", c.Log.Format)
	}
	if c.Player == "" {
		return errors.New("config player must not be empty")
	}
	return nil
}

// Client returns the API client settings.
func (c *Config) Client() api.Config {
	return api.Config{
		BaseURL:        c.API.BaseURL,
		DirectLoginURL: c.API.DirectLoginURL,
		Token:          c.API.Token,
		Timeout:        c.API.Timeout,
		PresetTimeout:  c.API.PresetTimeout,
		LoginTimeout:   c.API.LoginTimeout,
	}
}

func checkURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config %s %q must be an absolute http(s) URL", key, raw)
	}
	return nil
}
