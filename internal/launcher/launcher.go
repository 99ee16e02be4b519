package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// Config adjusts how activation terminals are launched.
type Config struct {
	// WorkspaceDir is where venv directories live.
	WorkspaceDir string
	// CondaBinary is the conda executable.
	CondaBinary string
}

// Launcher opens a new interactive terminal with an environment activated.
type Launcher struct {
	workspaceDir string
	conda        string
}

// New constructs a launcher.
func New(cfg Config) *Launcher {
	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = "."
	}
	if cfg.CondaBinary == "" {
		cfg.CondaBinary = "conda"
	}
	return &Launcher{workspaceDir: cfg.WorkspaceDir, conda: cfg.CondaBinary}
}

// Launch opens a terminal window whose shell has the environment's activation
// already applied: a venv sources its activate.bat and reports the active
// interpreter, a conda environment activates and lists environments. The
// terminal runs detached; Launch returns once the window process is spawned.
// Validation failures reject before any process is spawned.
func (l *Launcher) Launch(ctx context.Context, kind schema.EnvKind, name string) error {
	if name == "" {
		return schema.ErrEmptyName
	}
	log := pslog.Ctx(ctx)

	var commandLine string
	switch kind {
	case schema.EnvKindVenv:
		script := filepath.Join(l.workspaceDir, name, "Scripts", "activate.bat")
		commandLine = fmt.Sprintf("call %s && where python && python --version", script)
	case schema.EnvKindConda:
		commandLine = fmt.Sprintf("%s activate %s && %s info --envs", l.conda, name, l.conda)
	default:
		return fmt.Errorf("%w: %q", schema.ErrInvalidKind, kind)
	}

	argv := consoleCommand(commandLine)
	log.Info("launching activated terminal", "kind", kind, "name", name, "command", commandLine)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = l.workspaceDir
	applyConsoleAttrs(cmd)
	if err := cmd.Start(); err != nil {
		log.Error("terminal launch failed", "kind", kind, "name", name, "err", err)
		return err
	}
	// The terminal belongs to the user now; release it so it outlives us.
	return cmd.Process.Release()
}
