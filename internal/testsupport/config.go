package testsupport

import (
	"path/filepath"
	"testing"

	"netconnect/internal/config"
)

// NewConfig produces a config seeded with per-test paths and short timeouts
// suitable for talking to an in-process fake daemon.
func NewConfig(t testing.TB, socketPath string) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Daemon.Socket = socketPath
	cfg.Daemon.Timeout = 2
	cfg.Watch.Interval = 1
	cfg.Watch.LockPath = filepath.Join(base, "watch.lock")
	cfg.Host.Hostname = "testhost.local"
	cfg.Host.Interfaces = nil
	return &cfg
}
