package schema

import (
	"os"
	"path/filepath"
)

// ServiceConfig defines defaults for the core service.
type ServiceConfig struct {
	// WorkspaceDir is scanned for venv directories and receives new venvs.
	WorkspaceDir string
	// StateDir holds the persisted selection and downloaded installers.
	StateDir string
	// PyBinary is the Windows Python launcher executable.
	PyBinary string
	// CondaBinary is the conda executable.
	CondaBinary string
	// DefaultEnvName seeds environment names when the caller supplies none.
	DefaultEnvName string
}

// DefaultEnvName seeds environment names when the caller supplies none.
const DefaultEnvName = "myenv"

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = "."
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".envforge", "state")
	}
	if cfg.PyBinary == "" {
		cfg.PyBinary = "py"
	}
	if cfg.CondaBinary == "" {
		cfg.CondaBinary = "conda"
	}
	if cfg.DefaultEnvName == "" {
		cfg.DefaultEnvName = DefaultEnvName
	}
	return cfg, nil
}
