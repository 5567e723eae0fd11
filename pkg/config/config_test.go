package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Addr() != "127.0.0.1:8080" {
		t.Fatalf("default addr %q", c.Addr())
	}
	if c.Logging.Level != "info" {
		t.Fatalf("default log level %q", c.Logging.Level)
	}
	if c.SessionTTL() != 24*time.Hour {
		t.Fatalf("default ttl %s", c.SessionTTL())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuelgo.yaml")
	data := `
server:
  address: 0.0.0.0
  port: 9000
logging:
  level: debug
sessions:
  path: /tmp/sess
  ttl: 2h
security:
  rate_limit:
    rps: 50
    burst: 100
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr() != "0.0.0.0:9000" {
		t.Fatalf("addr %q", c.Addr())
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("level %q", c.Logging.Level)
	}
	if c.SessionTTL() != 2*time.Hour {
		t.Fatalf("ttl %s", c.SessionTTL())
	}
	if c.Security.RateLimit.RPS != 50 || c.Security.RateLimit.Burst != 100 {
		t.Fatalf("rate limit %v", c.Security.RateLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEffectiveEnvOverlay(t *testing.T) {
	t.Setenv("FUELGO_ADDR", "10.1.1.1")
	t.Setenv("FUELGO_PORT", "7000")
	t.Setenv("FUELGO_LOG_LEVEL", "warn")

	c, source, err := LoadEffective("")
	if err != nil {
		t.Fatalf("load effective: %v", err)
	}
	if source != "env" {
		t.Fatalf("source %q", source)
	}
	if c.Addr() != "10.1.1.1:7000" {
		t.Fatalf("addr %q", c.Addr())
	}
	if c.Logging.Level != "warn" {
		t.Fatalf("level %q", c.Logging.Level)
	}
}

func TestLoadEffectiveNoInputs(t *testing.T) {
	c, source, err := LoadEffective("")
	if err != nil {
		t.Fatalf("load effective: %v", err)
	}
	if source != "defaults" {
		t.Fatalf("source %q", source)
	}
	if c.Addr() != "127.0.0.1:8080" {
		t.Fatalf("addr %q", c.Addr())
	}
}

func TestSessionTTLFallback(t *testing.T) {
	c := Default()
	c.Sessions.TTL = "not-a-duration"
	if c.SessionTTL() != 24*time.Hour {
		t.Fatalf("invalid ttl should fall back, got %s", c.SessionTTL())
	}
}
