// Package config resolves, parses, validates, and defaults the netconnect
// host configuration.
//
// Configuration lives in a TOML file (default ~/.config/netconnect/config.toml)
// with sections per subsystem: the daemon socket and timeout, host display
// values (hostname override, forward URL, watched interfaces), watch-mode
// intervals, and logging. Load applies defaults first, so an absent file
// yields a fully usable configuration.
package config
