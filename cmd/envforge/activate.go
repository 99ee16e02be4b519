package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/envforge/internal/eventbus"
	"pkt.systems/envforge/schema"
)

func newActivateCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "activate [name]",
		Short: "Open a terminal with an environment activated",
		Long:  "Opens a new interactive terminal with the named environment activated. Without a name, the persisted selection is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var target schema.Selection
			if len(args) > 0 {
				target = schema.Selection{Kind: schema.EnvKind(kind), Name: args[0]}
			} else {
				selected, ok := c.svc.Selected(ctx)
				if !ok {
					return fmt.Errorf("no environment selected; pass a name or run: envforge select")
				}
				target = selected
			}

			events, cancel := c.bus.Subscribe()
			defer cancel()
			if err := c.svc.Activate(ctx, target.Kind, target.Name); err != nil {
				drainLogs(cmd, events)
				return err
			}
			drainLogs(cmd, events)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(schema.EnvKindVenv), "environment kind (venv or conda)")
	return cmd
}

// drainLogs prints any console events already queued on the bus.
func drainLogs(cmd *cobra.Command, events <-chan eventbus.Event) {
	for {
		select {
		case event := <-events:
			if event.Type == eventbus.EventLog {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), event.Log.String())
			}
		default:
			return
		}
	}
}
