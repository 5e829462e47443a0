package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"netconnect/internal/netconnectd"
	"netconnect/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeConfig drops a config file into a temp dir so tests never touch the
// user's real configuration.
func writeConfig(t *testing.T, socketPath string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[daemon]
socket = %q
timeout = 2

[host]
hostname = "testhost.local"
forward_url = "http://find.example.org"
interfaces = []

[watch]
interval = 1
lock_path = %q
`, socketPath, filepath.Join(dir, "watch.lock"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func statusHandler(wifiPresent bool, networks []map[string]any) testsupport.Handler {
	return func(command string, params json.RawMessage) (any, string) {
		switch command {
		case "status":
			return map[string]any{"wifi": map[string]any{"present": wifiPresent}}, ""
		case "list_wifi":
			return networks, ""
		case "country_list":
			return map[string]any{"country": "DE", "countries": []string{"DE", "GB", "US"}}, ""
		default:
			return nil, "unknown command " + command
		}
	}
}

func TestPrinterSkipsColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)
	p.section("Daemon")
	p.line(statusOK, "Wi-Fi present", "yes")
	p.line(statusWarn, "wlan0", "absent")
	p.line(statusInfo, "Country", "")

	out := buf.String()
	requireContains(t, out, "== Daemon ==")
	requireContains(t, out, "[OK] yes")
	requireContains(t, out, "[WARN] absent")
	requireContains(t, out, "[INFO]")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal output must carry no ANSI codes:\n%q", out)
	}
}

func TestNetworkTableRendering(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)
	p.networkTable([]netconnectd.Network{
		{SSID: "OfficeNet", Address: "c0:ff:ee:00:00:01", SignalQuality: 7, Encrypted: true},
		{SSID: "Guest", Address: "c0:ff:ee:00:00:02", SignalQuality: 100},
	})

	out := buf.String()
	for _, want := range []string{"SSID", "BSSID", "QUALITY", "ENCRYPTED", "OfficeNet", "Guest", "100", "yes", "no"} {
		requireContains(t, out, want)
	}
}

func TestStatusCommandRendersSections(t *testing.T) {
	daemon := testsupport.StartDaemon(t, statusHandler(true, []map[string]any{
		{"ssid": "OfficeNet", "address": "c0:ff:ee:00:00:01", "signal": 72, "encrypted": true},
		{"ssid": "Guest", "address": "c0:ff:ee:00:00:02", "signal": 31, "encrypted": false},
	}))
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	requireContains(t, out, "== Daemon ==")
	requireContains(t, out, "Wi-Fi present")
	requireContains(t, out, "[OK] yes")
	requireContains(t, out, "DE")
	requireContains(t, out, "testhost.local")
	requireContains(t, out, "http://find.example.org")
	requireContains(t, out, "OfficeNet")
	requireContains(t, out, "Guest")
}

func TestStatusCommandSkipsNetworkScanWithoutWifi(t *testing.T) {
	daemon := testsupport.StartDaemon(t, statusHandler(false, nil))
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	requireContains(t, out, "[WARN] no")
	requireContains(t, out, "no networks visible")
	if daemon.CallCount("list_wifi") != 0 {
		t.Fatalf("expected no list_wifi call without a wifi interface, got %d", daemon.CallCount("list_wifi"))
	}
}

func TestStatusCommandJSON(t *testing.T) {
	daemon := testsupport.StartDaemon(t, statusHandler(true, []map[string]any{
		{"ssid": "OfficeNet", "address": "c0:ff:ee:00:00:01", "signal": 72, "encrypted": true},
	}))
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "status", "--json")
	if err != nil {
		t.Fatalf("status --json failed: %v", err)
	}

	var report struct {
		Wifis []struct {
			SSID string `json:"ssid"`
		} `json:"wifis"`
		Hostname string   `json:"hostname"`
		Country  string   `json:"country"`
		Counts   []string `json:"countries"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal status JSON: %v\n%s", err, out)
	}
	if len(report.Wifis) != 1 || report.Wifis[0].SSID != "OfficeNet" {
		t.Fatalf("unexpected wifis: %+v", report.Wifis)
	}
	if report.Hostname != "testhost.local" {
		t.Fatalf("unexpected hostname %q", report.Hostname)
	}
	if report.Country != "DE" {
		t.Fatalf("unexpected country %q", report.Country)
	}
}

func TestWifiListForceFlag(t *testing.T) {
	daemon := testsupport.StartDaemon(t, statusHandler(true, []map[string]any{
		{"ssid": "OfficeNet", "address": "c0:ff:ee:00:00:01", "signal": 72, "encrypted": true},
	}))
	configPath := writeConfig(t, daemon.SocketPath())

	if _, err := runCLI(t, "-c", configPath, "wifi", "list"); err != nil {
		t.Fatalf("wifi list failed: %v", err)
	}
	if _, err := runCLI(t, "-c", configPath, "wifi", "list", "--force"); err != nil {
		t.Fatalf("wifi list --force failed: %v", err)
	}

	calls := daemon.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 daemon calls, got %d", len(calls))
	}
	if string(calls[0].Params) != "{}" {
		t.Fatalf("expected empty params without --force, got %s", calls[0].Params)
	}
	requireContains(t, string(calls[1].Params), `"force":true`)
}

func TestWifiListJSON(t *testing.T) {
	daemon := testsupport.StartDaemon(t, statusHandler(true, []map[string]any{
		{"ssid": "OfficeNet", "address": "c0:ff:ee:00:00:01", "signal": 72, "encrypted": true},
	}))
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "wifi", "list", "--json")
	if err != nil {
		t.Fatalf("wifi list --json failed: %v", err)
	}

	var networks []struct {
		SSID    string `json:"ssid"`
		Quality int    `json:"quality"`
	}
	if err := json.Unmarshal([]byte(out), &networks); err != nil {
		t.Fatalf("unmarshal network JSON: %v\n%s", err, out)
	}
	if len(networks) != 1 || networks[0].SSID != "OfficeNet" || networks[0].Quality != 72 {
		t.Fatalf("unexpected networks: %+v", networks)
	}
}

func TestWifiJoinConfiguresThenSelects(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return true, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "wifi", "join", "OfficeNet", "--psk", "hunter2")
	if err != nil {
		t.Fatalf("wifi join failed: %v", err)
	}
	requireContains(t, out, "joined OfficeNet")

	calls := daemon.Calls()
	if len(calls) != 2 || calls[0].Command != "config_wifi" || calls[1].Command != "start_wifi" {
		t.Fatalf("unexpected call sequence: %+v", calls)
	}
	requireContains(t, string(calls[0].Params), `"ssid":"OfficeNet"`)
	requireContains(t, string(calls[0].Params), `"psk":"hunter2"`)
}

func TestWifiJoinStopsAfterConfigFailure(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		if command == "config_wifi" {
			return nil, "invalid psk"
		}
		return true, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	_, err := runCLI(t, "-c", configPath, "wifi", "join", "OfficeNet", "--psk", "short")
	if err == nil {
		t.Fatal("expected join to fail")
	}
	requireContains(t, err.Error(), "invalid psk")
	if daemon.CallCount("start_wifi") != 0 {
		t.Fatalf("start_wifi must not run after config_wifi failure")
	}
}

func TestCountrySetUppercasesCode(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return true, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "country", "set", "de")
	if err != nil {
		t.Fatalf("country set failed: %v", err)
	}
	requireContains(t, out, "country set to DE")

	calls := daemon.Calls()
	if len(calls) != 1 || calls[0].Command != "set_country" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	requireContains(t, string(calls[0].Params), `"country_code":"DE"`)
}

func TestCountryShowsUnknownWhenDaemonLacksCommand(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return nil, "unknown command"
	})
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "country")
	if err != nil {
		t.Fatalf("country must not fail on old daemons: %v", err)
	}
	requireContains(t, out, "current: unknown")
}

func TestAPCommands(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return true, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "ap", "start")
	if err != nil {
		t.Fatalf("ap start failed: %v", err)
	}
	requireContains(t, out, "access point started")

	out, err = runCLI(t, "-c", configPath, "ap", "stop")
	if err != nil {
		t.Fatalf("ap stop failed: %v", err)
	}
	requireContains(t, out, "access point stopped")

	if daemon.CallCount("start_ap") != 1 || daemon.CallCount("stop_ap") != 1 {
		t.Fatalf("unexpected ap calls: %+v", daemon.Calls())
	}
}

func TestResetCommand(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return true, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	out, err := runCLI(t, "-c", configPath, "reset")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	requireContains(t, out, "daemon reset")
	if daemon.CallCount("reset") != 1 {
		t.Fatalf("expected one reset call, got %+v", daemon.Calls())
	}
}

func TestConnectErrorMentionsSocket(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere.sock")
	configPath := writeConfig(t, missing)

	_, err := runCLI(t, "-c", configPath, "reset")
	if err == nil {
		t.Fatal("expected a connection error")
	}
	requireContains(t, err.Error(), "is netconnectd running?")
	requireContains(t, err.Error(), missing)
}

func TestSocketFlagOverridesConfig(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return true, ""
	})
	configPath := writeConfig(t, filepath.Join(t.TempDir(), "wrong.sock"))

	if _, err := runCLI(t, "-c", configPath, "--socket", daemon.SocketPath(), "reset"); err != nil {
		t.Fatalf("reset with --socket failed: %v", err)
	}
	if daemon.CallCount("reset") != 1 {
		t.Fatalf("expected the flag socket to be dialed, got %+v", daemon.Calls())
	}
}

func TestWatchRefusesSecondInstance(t *testing.T) {
	daemon := testsupport.StartDaemon(t, func(command string, params json.RawMessage) (any, string) {
		return map[string]any{"wifi": map[string]any{"present": false}}, ""
	})
	configPath := writeConfig(t, daemon.SocketPath())

	lock := flock.New(filepath.Join(filepath.Dir(configPath), "watch.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire watch lock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	_, err = runCLI(t, "-c", configPath, "watch")
	if err == nil {
		t.Fatal("expected watch to refuse while the lock is held")
	}
	requireContains(t, err.Error(), "another watcher is already running")
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, out, "wrote "+target)

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --force to fail")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}

	out, err = runCLI(t, "config", "validate", "--path", target)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	requireContains(t, out, "is valid")
	requireContains(t, out, "socket: /var/run/netconnectd.sock")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := "[daemon]\ntimeout = -5\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write bad config: %v", err)
	}

	if _, err := runCLI(t, "config", "validate", "--path", path); err == nil {
		t.Fatal("expected validation to fail for negative timeout")
	}
}
