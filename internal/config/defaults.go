package config

const (
	defaultSocketPath    = "/var/run/netconnectd.sock"
	defaultTimeout       = 80 // netconnectd wifi scans can take over a minute
	defaultForwardURL    = "http://find.mr-beam.org"
	defaultWatchInterval = 15
	defaultWatchLockPath = "~/.local/state/netconnect/watch.lock"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Socket:  defaultSocketPath,
			Timeout: defaultTimeout,
		},
		Host: Host{
			ForwardURL: defaultForwardURL,
			Interfaces: []string{"eth0", "wlan0"},
		},
		Watch: Watch{
			Interval: defaultWatchInterval,
			LockPath: defaultWatchLockPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
