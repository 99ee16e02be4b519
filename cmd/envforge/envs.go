package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/envforge/schema"
)

func newEnvsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List virtual environments and conda environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			selected, hasSelection := c.svc.Selected(ctx)
			marker := func(kind schema.EnvKind, name string) string {
				if hasSelection && selected.Kind == kind && selected.Name == name {
					return " *"
				}
				return ""
			}

			venvs, err := c.svc.Venvs(ctx)
			if err != nil {
				// Unreadable workspace shows as empty, matching the UI pages.
				venvs = nil
			}
			_, _ = fmt.Fprintf(out, "Virtual environments (%s):\n", c.cfg.WorkspaceDir)
			if len(venvs) == 0 {
				_, _ = fmt.Fprintln(out, "  (none)")
			}
			for _, name := range venvs {
				_, _ = fmt.Fprintf(out, "  %s%s\n", name, marker(schema.EnvKindVenv, name))
			}

			if c.svc.CondaAvailable(ctx) {
				_, _ = fmt.Fprintln(out, "Conda environments:")
				condaEnvs := c.svc.CondaEnvs(ctx)
				if len(condaEnvs) == 0 {
					_, _ = fmt.Fprintln(out, "  (none)")
				}
				for _, name := range condaEnvs {
					_, _ = fmt.Fprintf(out, "  %s%s\n", name, marker(schema.EnvKindConda, name))
				}
			} else {
				_, _ = fmt.Fprintln(out, "Conda: not available")
			}

			if hasSelection {
				_, _ = fmt.Fprintf(out, "Selected: %s (%s)\n", selected.Name, selected.Kind)
			}
			return nil
		},
	}
}
