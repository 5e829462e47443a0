package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCountryCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "country",
		Short: "Show and set the Wi-Fi regulatory country",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := ctx.client().CountryList(cmd.Context())

			if jsonOut {
				return newPrinter(cmd.OutOrStdout()).json(info)
			}

			stdout := cmd.OutOrStdout()
			current := info.Current
			if current == "" {
				current = "unknown"
			}
			fmt.Fprintf(stdout, "current: %s\n", current)
			if len(info.Available) > 0 {
				fmt.Fprintf(stdout, "available: %s\n", strings.Join(info.Available, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Set the regulatory country code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(strings.TrimSpace(args[0]))
			if err := ctx.client().SetCountry(cmd.Context(), code); err != nil {
				return ctx.wrapClientError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "country set to %s\n", code)
			return nil
		},
	})

	return cmd
}
