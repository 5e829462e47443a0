package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWifiCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Inspect and join Wi-Fi networks",
	}

	cmd.AddCommand(newWifiListCommand(ctx))
	cmd.AddCommand(newWifiJoinCommand(ctx))
	cmd.AddCommand(newWifiForgetCommand(ctx))

	return cmd
}

func newWifiListCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible Wi-Fi networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			networks, err := ctx.client().ListWifi(cmd.Context(), force)
			if err != nil {
				return ctx.wrapClientError(err)
			}

			out := newPrinter(cmd.OutOrStdout())
			if jsonOut {
				return out.json(networks)
			}
			if len(networks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no networks visible")
				return nil
			}
			out.networkTable(networks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Force a fresh scan instead of cached results")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newWifiJoinCommand(ctx *commandContext) *cobra.Command {
	var psk string
	var force bool

	cmd := &cobra.Command{
		Use:   "join <ssid>",
		Short: "Configure and select a Wi-Fi network",
		Long: `Configure the daemon's Wi-Fi credentials and immediately select the
network. The daemon tears down a running access point when the selection
succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ssid := args[0]
			if err := ctx.client().ConfigureAndSelectWifi(cmd.Context(), ssid, psk, force); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "joined %s\n", ssid)
			return nil
		},
	}

	cmd.Flags().StringVar(&psk, "psk", "", "Pre-shared key (omit for open networks)")
	cmd.Flags().BoolVar(&force, "force", false, "Apply the selection even while clients are connected to the access point")
	return cmd
}

func newWifiForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Drop the daemon's stored Wi-Fi configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().ForgetWifi(cmd.Context()); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wifi configuration forgotten")
			return nil
		},
	}
}
