package netconnectd

import (
	"encoding/json"
	"fmt"
)

// Network describes one visible Wi-Fi network from a list_wifi reply.
type Network struct {
	SSID          string `json:"ssid"`
	Address       string `json:"address"`
	SignalQuality int    `json:"quality"`
	Encrypted     bool   `json:"encrypted"`
}

// wireNetwork is the daemon-side element shape; list_wifi reports signal
// strength under "signal".
type wireNetwork struct {
	SSID      string `json:"ssid"`
	Address   string `json:"address"`
	Signal    int    `json:"signal"`
	Encrypted bool   `json:"encrypted"`
}

// StatusSnapshot is one status reply. The payload shape belongs to the
// daemon; the client only contracts on wifi.present and keeps the rest
// verbatim for display and logging.
type StatusSnapshot struct {
	raw         json.RawMessage
	wifiPresent bool
}

func parseStatus(raw json.RawMessage) (StatusSnapshot, error) {
	var probe struct {
		Wifi struct {
			Present bool `json:"present"`
		} `json:"wifi"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return StatusSnapshot{}, &Error{
			Kind:    KindDecode,
			Message: fmt.Sprintf("malformed status payload: %v", err),
			Raw:     string(raw),
			Err:     err,
		}
	}
	return StatusSnapshot{
		raw:         append(json.RawMessage(nil), raw...),
		wifiPresent: probe.Wifi.Present,
	}, nil
}

// WifiPresent reports whether the daemon sees a Wi-Fi interface; callers use
// it to decide whether a network list is worth requesting.
func (s StatusSnapshot) WifiPresent() bool { return s.wifiPresent }

// Raw returns the undecoded status payload.
func (s StatusSnapshot) Raw() json.RawMessage { return s.raw }

func (s StatusSnapshot) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

// CountryInfo reports the regulatory domain configured on the daemon.
type CountryInfo struct {
	Current   string   `json:"country"`
	Available []string `json:"countries"`
}

// Overview bundles the two dependent status reads: the status snapshot and,
// only when a Wi-Fi interface is present, the visible network list.
type Overview struct {
	Status   StatusSnapshot `json:"status"`
	Networks []Network      `json:"wifis"`
}
