package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Daemon.Socket != "/var/run/netconnectd.sock" {
		t.Errorf("unexpected default socket: %s", cfg.Daemon.Socket)
	}
	if cfg.Daemon.Timeout != 80 {
		t.Errorf("unexpected default timeout: %d", cfg.Daemon.Timeout)
	}
	if cfg.Watch.Interval != 15 {
		t.Errorf("unexpected default watch interval: %d", cfg.Watch.Interval)
	}
	if len(cfg.Host.Interfaces) != 2 {
		t.Errorf("unexpected default interfaces: %v", cfg.Host.Interfaces)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[daemon]",
		`socket = "/tmp/test-netconnectd.sock"`,
		"timeout = 5",
		"",
		"[host]",
		`hostname = "printer.example"`,
		`interfaces = ["wlan0"]`,
		"",
		"[watch]",
		"interval = 3",
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %s, want %s", resolved, path)
	}
	if cfg.Daemon.Socket != "/tmp/test-netconnectd.sock" {
		t.Errorf("socket = %s", cfg.Daemon.Socket)
	}
	if cfg.DaemonTimeout() != 5*time.Second {
		t.Errorf("timeout = %s", cfg.DaemonTimeout())
	}
	if cfg.WatchInterval() != 3*time.Second {
		t.Errorf("interval = %s", cfg.WatchInterval())
	}
	if cfg.EffectiveHostname() != "printer.example" {
		t.Errorf("hostname = %s", cfg.EffectiveHostname())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	// Unset fields keep their defaults.
	if cfg.Host.ForwardURL != defaultForwardURL {
		t.Errorf("forward_url = %s", cfg.Host.ForwardURL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, _, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected no config file")
	}
	if cfg.Daemon.Socket != defaultSocketPath {
		t.Errorf("socket = %s", cfg.Daemon.Socket)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty socket", func(c *Config) { c.Daemon.Socket = "" }},
		{"zero timeout", func(c *Config) { c.Daemon.Timeout = 0 }},
		{"negative interval", func(c *Config) { c.Watch.Interval = -1 }},
		{"empty lock path", func(c *Config) { c.Watch.LockPath = "" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expanded, err := ExpandPath("~/state/netconnect.lock")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	want := filepath.Join(home, "state", "netconnect.lock")
	if expanded != want {
		t.Errorf("expanded = %s, want %s", expanded, want)
	}
}

func TestEffectiveHostnameFallback(t *testing.T) {
	cfg := Default()
	hostname := cfg.EffectiveHostname()
	if hostname == "" {
		t.Skip("os.Hostname unavailable in this environment")
	}
	if !strings.HasSuffix(hostname, ".local") {
		t.Errorf("fallback hostname %q should end in .local", hostname)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config file missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
