package netconnectd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"netconnect/internal/logging"
)

// Client issues one-shot transactions against the netconnectd control
// socket. Construct it once with New and share it freely; every operation
// opens its own connection, so no internal locking is needed.
type Client struct {
	transport transport
	logger    *slog.Logger
}

// New builds a client for the daemon socket at socketPath. The timeout
// applies to connect plus all reads and writes within one transaction.
func New(socketPath string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		transport: transport{socketPath: socketPath, timeout: timeout},
		logger:    logging.NewComponentLogger(logger, "netconnectd"),
	}
}

// send runs the shared transaction algorithm: wrap params under the command
// name, exchange one frame, and split the reply into result or error. The
// daemon's reply must carry exactly one of "result" or "error"; when a
// future daemon ever emits both, "result" wins (checked first).
func (c *Client) send(ctx context.Context, command string, params any) (json.RawMessage, error) {
	if params == nil {
		params = struct{}{}
	}
	// json.Marshal emits compact output and escapes control characters, so
	// the request can never contain a stray frame terminator.
	payload, err := json.Marshal(map[string]any{command: params})
	if err != nil {
		return nil, &Error{Kind: KindDecode, Message: fmt.Sprintf("encode %s request: %v", command, err), Err: err}
	}

	logger := c.logger.With(
		logging.String("command", command),
		logging.String("request_id", uuid.NewString()),
	)

	reply, err := c.transport.exchange(ctx, payload)
	if err != nil {
		var te *Error
		if e, ok := err.(*Error); ok {
			te = &Error{Kind: e.Kind, Message: "talking to netconnectd: " + e.Message, Err: e}
		} else {
			te = &Error{Kind: KindConnect, Message: fmt.Sprintf("talking to netconnectd: %v", err), Err: err}
		}
		logger.Warn("transaction failed", logging.Error(te))
		return nil, te
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(reply, &decoded); err != nil {
		derr := &Error{
			Kind:    KindDecode,
			Message: fmt.Sprintf("malformed reply from netconnectd: %v", err),
			Raw:     string(reply),
			Err:     err,
		}
		logger.Warn("malformed reply from netconnectd", logging.String("raw", string(reply)))
		return nil, derr
	}

	if result, ok := decoded["result"]; ok {
		return result, nil
	}
	if rawErr, ok := decoded["error"]; ok {
		var message string
		if err := json.Unmarshal(rawErr, &message); err != nil {
			message = string(rawErr)
		}
		logger.Warn("request to netconnectd went wrong", logging.String("daemon_error", message))
		return nil, &Error{Kind: KindDaemon, Message: message}
	}

	derr := &Error{
		Kind:    KindDecode,
		Message: fmt.Sprintf("unknown response from netconnectd: %s", reply),
		Raw:     string(reply),
	}
	logger.Warn("unknown response from netconnectd", logging.String("raw", string(reply)))
	return nil, derr
}

// Status fetches the daemon's status snapshot.
func (c *Client) Status(ctx context.Context) (StatusSnapshot, error) {
	result, err := c.send(ctx, "status", nil)
	if err != nil {
		return StatusSnapshot{}, fmt.Errorf("query status: %w", err)
	}
	return parseStatus(result)
}

// ListWifi fetches the visible network list. With force set the daemon is
// asked to rescan instead of serving its cache.
func (c *Client) ListWifi(ctx context.Context, force bool) ([]Network, error) {
	params := struct {
		Force bool `json:"force,omitempty"`
	}{Force: force}
	if force {
		c.logger.Info("forcing wifi refresh")
	}

	result, err := c.send(ctx, "list_wifi", params)
	if err != nil {
		return nil, fmt.Errorf("list wifi: %w", err)
	}

	var raw []wireNetwork
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, &Error{
			Kind:    KindDecode,
			Message: fmt.Sprintf("malformed wifi list: %v", err),
			Raw:     string(result),
			Err:     err,
		}
	}

	networks := make([]Network, 0, len(raw))
	for _, w := range raw {
		networks = append(networks, Network{
			SSID:          w.SSID,
			Address:       w.Address,
			SignalQuality: w.Signal,
			Encrypted:     w.Encrypted,
		})
	}
	return networks, nil
}

// CountryList fetches the current regulatory country and the available
// codes. Older daemon builds lack the country_list command entirely, so any
// failure here downgrades to an empty result with a warning instead of
// propagating; absence must never break status retrieval.
func (c *Client) CountryList(ctx context.Context) CountryInfo {
	empty := CountryInfo{Available: []string{}}

	result, err := c.send(ctx, "country_list", nil)
	if err != nil {
		c.logger.Warn("country list unavailable", logging.Error(err))
		return empty
	}

	var wire struct {
		Country   string   `json:"country"`
		Countries []string `json:"countries"`
	}
	if err := json.Unmarshal(result, &wire); err != nil {
		c.logger.Warn("country list unavailable", logging.Error(err), logging.String("raw", string(result)))
		return empty
	}

	info := CountryInfo{Current: wire.Country, Available: wire.Countries}
	if info.Available == nil {
		info.Available = []string{}
	}
	return info
}

// ConfigureAndSelectWifi stores a network configuration and then selects it.
// The two steps are strictly sequential: start_wifi is never issued when
// config_wifi fails.
func (c *Client) ConfigureAndSelectWifi(ctx context.Context, ssid, psk string, force bool) error {
	c.logger.Info("configuring wifi",
		logging.String("ssid", ssid),
		logging.Bool("psk_set", psk != ""),
	)

	params := struct {
		SSID  string `json:"ssid"`
		PSK   string `json:"psk"`
		Force bool   `json:"force"`
	}{SSID: ssid, PSK: psk, Force: force}
	if _, err := c.send(ctx, "config_wifi", params); err != nil {
		return fmt.Errorf("configure wifi: %w", err)
	}

	if _, err := c.send(ctx, "start_wifi", nil); err != nil {
		return fmt.Errorf("select wifi: %w", err)
	}
	return nil
}

// ForgetWifi drops the daemon's stored network configuration.
func (c *Client) ForgetWifi(ctx context.Context) error {
	if _, err := c.send(ctx, "forget_wifi", nil); err != nil {
		return fmt.Errorf("forget wifi: %w", err)
	}
	return nil
}

// Reset factory-resets the daemon.
func (c *Client) Reset(ctx context.Context) error {
	if _, err := c.send(ctx, "reset", nil); err != nil {
		return fmt.Errorf("reset netconnectd: %w", err)
	}
	return nil
}

// StartAP switches the daemon into access-point fallback mode.
func (c *Client) StartAP(ctx context.Context) error {
	if _, err := c.send(ctx, "start_ap", nil); err != nil {
		return fmt.Errorf("start access point: %w", err)
	}
	return nil
}

// StopAP leaves access-point fallback mode.
func (c *Client) StopAP(ctx context.Context) error {
	if _, err := c.send(ctx, "stop_ap", nil); err != nil {
		return fmt.Errorf("stop access point: %w", err)
	}
	return nil
}

// SetCountry configures the daemon's regulatory country code.
func (c *Client) SetCountry(ctx context.Context, code string) error {
	params := struct {
		CountryCode string `json:"country_code"`
	}{CountryCode: code}
	if _, err := c.send(ctx, "set_country", params); err != nil {
		return fmt.Errorf("set country: %w", err)
	}
	return nil
}

// GetOverview performs the composite read: fetch status and, only when a
// Wi-Fi interface is present, additionally fetch the network list. The two
// transactions run sequentially on the caller's goroutine.
func (c *Client) GetOverview(ctx context.Context) (Overview, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return Overview{}, err
	}

	networks := []Network{}
	if status.WifiPresent() {
		networks, err = c.ListWifi(ctx, false)
		if err != nil {
			return Overview{}, err
		}
	}
	return Overview{Status: status, Networks: networks}, nil
}
