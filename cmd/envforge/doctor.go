package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Probe the external tools envforge depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newConsole(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)

			if c.svc.CondaAvailable(ctx) {
				logger.Info("doctor conda ok")
			} else {
				logger.Warn("doctor conda missing")
			}
			for _, version := range c.cfg.Python.Versions {
				if c.svc.PythonAvailable(ctx, version) {
					logger.Info("doctor python ok", "version", version)
				} else {
					logger.Warn("doctor python missing", "version", version)
				}
			}
			venvs, err := c.svc.Venvs(ctx)
			if err != nil {
				logger.Warn("doctor workspace unreadable", "dir", c.cfg.WorkspaceDir, "err", err)
				return nil
			}
			logger.Info("doctor workspace ok", "dir", c.cfg.WorkspaceDir, "venvs", len(venvs))
			return nil
		},
	}
}
