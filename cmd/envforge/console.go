package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pkt.systems/envforge/core"
	"pkt.systems/envforge/internal/appconfig"
	"pkt.systems/envforge/internal/eventbus"
	"pkt.systems/envforge/internal/execrunner"
	"pkt.systems/envforge/internal/pyversions"
	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// console wires the core service to a terminal, standing in for the GUI's
// log pane: job output and leveled log lines stream to stdout as they happen.
type console struct {
	cfg appconfig.Config
	svc core.Service
	bus *eventbus.Bus
}

func newConsole(cmd *cobra.Command) (*console, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := appconfig.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger := pslog.Ctx(cmd.Context())
	bus := eventbus.New(logger)
	svc, err := core.NewService(schema.ServiceConfig{
		WorkspaceDir: cfg.WorkspaceDir,
		StateDir:     cfg.StateDir,
		PyBinary:     cfg.Tools.Py,
		CondaBinary:  cfg.Tools.Conda,
	}, core.ServiceDeps{
		Runner: execrunner.New(),
		Resolver: pyversions.New(pyversions.Config{
			IndexURL:             cfg.Python.IndexURL,
			InstallerURLTemplate: cfg.Python.InstallerURLTemplate,
		}),
		Sink:   bus,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return &console{cfg: cfg, svc: svc, bus: bus}, nil
}

// waitForJob renders events until the job labeled label delivers its terminal
// event, and returns that job's exit code.
func (c *console) waitForJob(ctx context.Context, out io.Writer, events <-chan eventbus.Event, label string) (int, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case event := <-events:
			switch event.Type {
			case eventbus.EventOutput:
				if event.Output.Label == label {
					_, _ = fmt.Fprintln(out, event.Output.Line)
				}
			case eventbus.EventLog:
				_, _ = fmt.Fprintln(out, event.Log.String())
			case eventbus.EventJobDone:
				if event.Job.Label == label {
					return event.Job.ExitCode, nil
				}
			}
		}
	}
}
