package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/envforge/schema"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <venv|conda> <name>",
		Short: "Persist the current environment selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			kind := schema.EnvKind(args[0])
			name := args[1]
			if err := c.svc.Select(cmd.Context(), kind, name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected: %s (%s)\n", name, kind)
			return nil
		},
	}
}
