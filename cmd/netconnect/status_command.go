package main

import (
	"strings"

	"github.com/spf13/cobra"

	"netconnect/internal/netconnectd"
	"netconnect/internal/netinfo"
)

// statusReport mirrors the composite read: daemon status, visible networks
// (when a Wi-Fi interface is present), regulatory info, and host values.
type statusReport struct {
	Status      netconnectd.StatusSnapshot `json:"status"`
	Wifis       []netconnectd.Network      `json:"wifis"`
	Hostname    string                     `json:"hostname"`
	ForwardURL  string                     `json:"forwardUrl"`
	IPAddresses []netinfo.InterfaceAddrs   `json:"ip_addresses"`
	Country     string                     `json:"country"`
	Countries   []string                   `json:"countries"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon, network, and host status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			client := ctx.client()

			overview, err := client.GetOverview(cmd.Context())
			if err != nil {
				return ctx.wrapClientError(err)
			}
			country := client.CountryList(cmd.Context())
			ips := netinfo.Collect(cfg.Host.Interfaces)

			out := newPrinter(cmd.OutOrStdout())
			if jsonOut {
				return out.json(statusReport{
					Status:      overview.Status,
					Wifis:       overview.Networks,
					Hostname:    cfg.EffectiveHostname(),
					ForwardURL:  cfg.Host.ForwardURL,
					IPAddresses: ips,
					Country:     country.Current,
					Countries:   country.Available,
				})
			}

			out.section("Daemon")
			wifiKind := statusWarn
			if overview.Status.WifiPresent() {
				wifiKind = statusOK
			}
			out.line(wifiKind, "Wi-Fi present", yesNo(overview.Status.WifiPresent()))
			countryValue := country.Current
			if countryValue == "" {
				countryValue = "unknown"
			}
			out.line(statusInfo, "Country", countryValue)
			out.blank()

			out.section("Host")
			out.line(statusInfo, "Hostname", cfg.EffectiveHostname())
			if cfg.Host.ForwardURL != "" {
				out.line(statusInfo, "Forward URL", cfg.Host.ForwardURL)
			}
			for _, iface := range ips {
				if iface.Present {
					out.line(statusOK, iface.Name, strings.Join(iface.Addrs, ", "))
				} else {
					out.line(statusWarn, iface.Name, "absent")
				}
			}
			out.blank()

			out.section("Wi-Fi Networks")
			if len(overview.Networks) == 0 {
				out.line(statusInfo, "Visible", "no networks visible")
				return nil
			}
			out.networkTable(overview.Networks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
