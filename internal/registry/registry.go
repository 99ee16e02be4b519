package registry

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Config selects the external tool binaries the registry probes.
type Config struct {
	PyBinary    string
	CondaBinary string
}

// Registry discovers local venvs and conda environments.
type Registry struct {
	py    string
	conda string
}

// New constructs a registry. Empty binaries fall back to the conventional names.
func New(cfg Config) *Registry {
	if cfg.PyBinary == "" {
		cfg.PyBinary = "py"
	}
	if cfg.CondaBinary == "" {
		cfg.CondaBinary = "conda"
	}
	return &Registry{py: cfg.PyBinary, conda: cfg.CondaBinary}
}

// Venvs lists the immediate subdirectories of dir that look like venvs. A
// directory qualifies only when it holds Scripts/activate.bat. Order follows
// the directory listing.
func (r *Registry) Venvs(ctx context.Context, dir string) ([]string, error) {
	log := pslog.Ctx(ctx)
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("venv scan failed", "dir", dir, "err", err)
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		script := filepath.Join(dir, entry.Name(), "Scripts", "activate.bat")
		if _, err := os.Stat(script); err == nil {
			names = append(names, entry.Name())
		}
	}
	log.Debug("venv scan ok", "dir", dir, "count", len(names))
	return names, nil
}

// VenvExists reports whether dir already holds an entry named name.
func (r *Registry) VenvExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// CondaEnvs lists conda environment names. A missing or failing conda tool is
// not fatal: the error is logged and an empty list returned.
func (r *Registry) CondaEnvs(ctx context.Context) []string {
	log := pslog.Ctx(ctx)
	cmd := exec.CommandContext(ctx, r.conda, "env", "list")
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("conda env list failed", "err", err)
		return nil
	}
	return parseCondaEnvList(string(output))
}

// parseCondaEnvList extracts one name per line, skipping blanks and comments.
// A line counts only when it holds more than one whitespace-separated column,
// matching the conda "name  path" listing. Names containing spaces would be
// truncated here; that matches the tool's conventional output.
func parseCondaEnvList(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, " ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

// CondaExists reports whether name is already a conda environment.
func (r *Registry) CondaExists(ctx context.Context, name string) bool {
	for _, env := range r.CondaEnvs(ctx) {
		if env == name {
			return true
		}
	}
	return false
}

// CondaAvailable probes the conda tool. A missing binary and a non-zero exit
// both count as unavailable.
func (r *Registry) CondaAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, r.conda, "--version")
	if err := cmd.Run(); err != nil {
		pslog.Ctx(ctx).Debug("conda probe failed", "err", err)
		return false
	}
	return true
}

// PythonAvailable probes the py launcher for the requested major.minor version.
func (r *Registry) PythonAvailable(ctx context.Context, version string) bool {
	cmd := exec.CommandContext(ctx, r.py, "-"+version, "--version")
	if err := cmd.Run(); err != nil {
		pslog.Ctx(ctx).Debug("python probe failed", "version", version, "err", err)
		return false
	}
	return true
}
