package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the framework configuration loaded from YAML with optional
// environment overrides applied by LoadEffective.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
	Sessions SessionsConfig `yaml:"sessions"`
	Views    ViewsConfig    `yaml:"views"`
	Tasks    TasksConfig    `yaml:"tasks"`
}

// ServerConfig holds listen settings.
type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SecurityConfig holds middleware settings applied in front of applications.
type SecurityConfig struct {
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// SessionsConfig holds the session store settings.
type SessionsConfig struct {
	Path   string `yaml:"path"`
	Cookie string `yaml:"cookie"`
	TTL    string `yaml:"ttl"`
}

// ViewsConfig holds template lookup settings.
type ViewsConfig struct {
	Root string `yaml:"root"`
}

// TasksConfig holds cron expressions for built-in background tasks.
type TasksConfig struct {
	SessionGC string `yaml:"session_gc"`
}

// Default returns the built-in defaults used when no file or env override
// provides a value.
func Default() Config {
	var c Config
	c.Server.Address = "127.0.0.1"
	c.Server.Port = 8080
	c.Logging.Level = "info"
	c.Sessions.Cookie = "fuelgo_session"
	c.Sessions.TTL = "24h"
	c.Views.Root = "./views"
	return c
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// SessionTTL parses the configured session TTL, falling back to 24h when
// unset or invalid.
func (c Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Sessions.TTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// LoadEffective resolves the effective config: defaults, then the YAML file
// at path (if non-empty), then FUELGO_* environment variables. The second
// return names the winning source ("defaults", "config" or "env") for
// startup diagnostics.
func LoadEffective(path string) (Config, string, error) {
	c := Default()
	source := "defaults"
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := Load(path)
			if err != nil {
				return c, source, err
			}
			c = loaded
			source = "config"
		}
	}
	if applyEnv(&c) {
		source = "env"
	}
	return c, source, nil
}

// applyEnv overlays FUELGO_* environment variables and reports whether any
// were set.
func applyEnv(c *Config) bool {
	used := false
	if v := os.Getenv("FUELGO_ADDR"); v != "" {
		c.Server.Address = v
		used = true
	}
	if v := os.Getenv("FUELGO_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
			used = true
		}
	}
	if v := os.Getenv("FUELGO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
		used = true
	}
	if v := os.Getenv("FUELGO_SESSIONS_PATH"); v != "" {
		c.Sessions.Path = v
		used = true
	}
	if v := os.Getenv("FUELGO_VIEWS_ROOT"); v != "" {
		c.Views.Root = v
		used = true
	}
	return used
}
