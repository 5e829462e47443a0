package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Daemon contains the netconnectd socket connection settings.
type Daemon struct {
	Socket  string `toml:"socket"`
	Timeout int    `toml:"timeout"` // seconds, covers connect + I/O per transaction
}

// Host contains display-only host values surfaced next to daemon status.
type Host struct {
	Hostname   string   `toml:"hostname"` // empty means os.Hostname() + ".local"
	ForwardURL string   `toml:"forward_url"`
	Interfaces []string `toml:"interfaces"`
}

// Watch contains settings for the periodic status watcher.
type Watch struct {
	Interval int    `toml:"interval"` // seconds between polls
	LockPath string `toml:"lock_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the netconnect tooling.
//
// Sections by subsystem:
//   - Daemon: netconnectd socket path and per-transaction timeout
//   - Host: hostname override, forward URL, interfaces to report IPs for
//   - Watch: poll interval and single-instance lock for `netconnect watch`
//   - Logging: log format and level
type Config struct {
	Daemon  Daemon  `toml:"daemon"`
	Host    Host    `toml:"host"`
	Watch   Watch   `toml:"watch"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/netconnect/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	lockPath, err := ExpandPath(c.Watch.LockPath)
	if err != nil {
		return err
	}
	c.Watch.LockPath = lockPath

	c.Daemon.Socket = strings.TrimSpace(c.Daemon.Socket)
	c.Host.ForwardURL = strings.TrimSpace(c.Host.ForwardURL)
	c.Host.Hostname = strings.TrimSpace(c.Host.Hostname)
	return nil
}

// DaemonTimeout returns the per-transaction timeout as a duration.
func (c *Config) DaemonTimeout() time.Duration {
	return time.Duration(c.Daemon.Timeout) * time.Second
}

// WatchInterval returns the poll interval as a duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watch.Interval) * time.Second
}

// EffectiveHostname returns the configured hostname override, falling back
// to the OS hostname with a ".local" suffix.
func (c *Config) EffectiveHostname() string {
	if c.Host.Hostname != "" {
		return c.Host.Hostname
	}
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}
	return hostname + ".local"
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves a leading ~ and returns a cleaned absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
