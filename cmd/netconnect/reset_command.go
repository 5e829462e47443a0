package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the daemon to its startup state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Reset(cmd.Context()); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "daemon reset")
			return nil
		},
	}
}
