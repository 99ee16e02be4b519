package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/envforge/internal/pyversions"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int          `mapstructure:"config_version" yaml:"config_version"`
	WorkspaceDir  string       `mapstructure:"workspace_dir" yaml:"workspace_dir"`
	StateDir      string       `mapstructure:"state_dir" yaml:"state_dir"`
	Python        PythonConfig `mapstructure:"python" yaml:"python"`
	Tools         ToolsConfig  `mapstructure:"tools" yaml:"tools"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// PythonConfig controls python release resolution and installer download.
type PythonConfig struct {
	IndexURL             string `mapstructure:"index_url" yaml:"index_url"`
	InstallerURLTemplate string `mapstructure:"installer_url_template" yaml:"installer_url_template"`
	// Versions is the list offered for venv and conda creation.
	Versions []string `mapstructure:"versions" yaml:"versions"`
}

// ToolsConfig names the external executables.
type ToolsConfig struct {
	Py    string `mapstructure:"py" yaml:"py"`
	Conda string `mapstructure:"conda" yaml:"conda"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		WorkspaceDir:  ".",
		StateDir:      filepath.Join(home, ".envforge", "state"),
		Python: PythonConfig{
			IndexURL:             pyversions.DefaultIndexURL,
			InstallerURLTemplate: pyversions.DefaultInstallerURLTemplate,
			Versions:             []string{"3.8", "3.9", "3.10", "3.11", "3.12"},
		},
		Tools: ToolsConfig{
			Py:    "py",
			Conda: "conda",
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".envforge", "config.yaml"), nil
}
