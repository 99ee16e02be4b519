package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallPythonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-python <major.minor>",
		Short: "Download and silently run the Python installer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			events, cancel := c.bus.Subscribe()
			defer cancel()
			label, err := c.svc.InstallPython(ctx, args[0])
			if err != nil {
				return err
			}
			code, err := c.waitForJob(ctx, cmd.OutOrStdout(), events, label)
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("python installation failed with exit code %d", code)
			}
			return nil
		},
	}
}
