package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAPCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ap",
		Short: "Control the daemon's access point",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Bring up the access point",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().StartAP(cmd.Context()); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "access point started")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Tear down the access point",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().StopAP(cmd.Context()); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "access point stopped")
			return nil
		},
	})

	return cmd
}
