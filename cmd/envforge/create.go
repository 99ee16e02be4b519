package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a virtual environment or conda environment",
	}
	cmd.AddCommand(newCreateVenvCmd())
	cmd.AddCommand(newCreateCondaCmd())
	return cmd
}

func newCreateVenvCmd() *cobra.Command {
	var pythonVersion string
	cmd := &cobra.Command{
		Use:   "venv [name]",
		Short: "Create a venv in the workspace directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			if !c.svc.PythonAvailable(ctx, pythonVersion) {
				return fmt.Errorf("python %s is not installed; run: envforge install-python %s", pythonVersion, pythonVersion)
			}

			events, cancel := c.bus.Subscribe()
			defer cancel()
			final, err := c.svc.CreateVenv(ctx, name, pythonVersion)
			if err != nil {
				return err
			}
			code, err := c.waitForJob(ctx, cmd.OutOrStdout(), events, final)
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("venv creation failed with exit code %d", code)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created and selected venv %q\n", final)
			return nil
		},
	}
	cmd.Flags().StringVar(&pythonVersion, "python", "3.11", "python major.minor version")
	return cmd
}

func newCreateCondaCmd() *cobra.Command {
	var pythonVersion string
	cmd := &cobra.Command{
		Use:   "conda [name]",
		Short: "Create a conda environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			events, cancel := c.bus.Subscribe()
			defer cancel()
			final, err := c.svc.CreateCondaEnv(ctx, name, pythonVersion)
			if err != nil {
				return err
			}
			code, err := c.waitForJob(ctx, cmd.OutOrStdout(), events, final)
			if err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("conda creation failed with exit code %d", code)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created and selected conda environment %q\n", final)
			return nil
		},
	}
	cmd.Flags().StringVar(&pythonVersion, "python", "3.11", "python major.minor version")
	return cmd
}
