package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var socketFlag string
	var configFlag string
	var timeoutFlag int

	ctx := newCommandContext(&socketFlag, &configFlag, &timeoutFlag)

	rootCmd := &cobra.Command{
		Use:           "netconnect",
		Short:         "Control a netconnectd network daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Path to the netconnectd socket")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Per-transaction timeout in seconds (0 uses the configured value)")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newWifiCommand(ctx))
	rootCmd.AddCommand(newAPCommand(ctx))
	rootCmd.AddCommand(newCountryCommand(ctx))
	rootCmd.AddCommand(newResetCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
