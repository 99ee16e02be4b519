package execrunner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"pkt.systems/envforge/core"
	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// Runner implements core.Runner on top of os/exec.
type Runner struct{}

// New constructs a local process runner.
func New() *Runner {
	return &Runner{}
}

// Start spawns the external process with stdout and stderr merged into one
// pipe, so lines arrive in the order the child wrote them. It returns as soon
// as the process is running; jobs are never cancelled or timed out, so the
// process is deliberately not bound to ctx.
func (r *Runner) Start(ctx context.Context, req core.RunRequest) (core.RunHandle, error) {
	if len(req.Command) == 0 {
		return nil, schema.ErrEmptyCommand
	}
	log := pslog.Ctx(ctx)

	cmd := exec.Command(req.Command[0], req.Command[1:]...)
	if req.Dir != "" {
		cmd.Dir = req.Dir
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		log.Error("process start failed", "command", req.Command[0], "label", req.Label, "err", err)
		return nil, classifyStartError(req.Command[0], err)
	}
	// The child holds its own copy of the write end; closing ours makes the
	// read end reach EOF when the child exits.
	_ = pw.Close()

	log.Debug("process started", "command", req.Command[0], "label", req.Label, "pid", cmd.Process.Pid)

	return &handle{
		cmd:     cmd,
		stream:  newLineStream(pr, log),
		label:   req.Label,
		log:     log,
		started: time.Now(),
	}, nil
}

// classifyStartError keeps "executable does not exist" distinguishable from
// other setup failures, which are themselves distinct from a non-zero exit.
func classifyStartError(name string, err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", schema.ErrToolMissing, name)
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", schema.ErrToolMissing, name)
	}
	return err
}

type handle struct {
	cmd     *exec.Cmd
	stream  *lineStream
	label   string
	log     pslog.Logger
	started time.Time
}

func (h *handle) Lines() core.LineStream {
	return h.stream
}

func (h *handle) Wait(ctx context.Context) (core.RunResult, error) {
	_ = ctx
	err := h.cmd.Wait()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			h.log.Error("process wait failed", "label", h.label, "err", err)
			return core.RunResult{}, err
		}
	}
	h.log.Debug("process finished",
		"label", h.label,
		"exit_code", exitCode,
		"duration_ms", time.Since(h.started).Milliseconds(),
	)
	return core.RunResult{ExitCode: exitCode, Label: h.label}, nil
}

func (h *handle) Close() error {
	return h.stream.Close()
}
