package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("workspace_dir", cfg.WorkspaceDir)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("python.index_url", cfg.Python.IndexURL)
	v.SetDefault("python.installer_url_template", cfg.Python.InstallerURLTemplate)
	v.SetDefault("python.versions", cfg.Python.Versions)
	v.SetDefault("tools.py", cfg.Tools.Py)
	v.SetDefault("tools.conda", cfg.Tools.Conda)

	// viper reports a plain path error when SetConfigFile names a missing
	// file; both that and ConfigFileNotFoundError mean "use defaults".
	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	return cfg, nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.WorkspaceDir = expandEnv(cfg.WorkspaceDir)
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.Tools.Py = expandEnv(cfg.Tools.Py)
	cfg.Tools.Conda = expandEnv(cfg.Tools.Conda)
}

var envTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\$[A-Za-z_][A-Za-z0-9_]*`)

// expandEnv substitutes $VAR and ${VAR} references. An unset variable leaves
// the token untouched in whichever spelling it was written.
func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return envTokenPattern.ReplaceAllStringFunc(value, func(token string) string {
		name := strings.TrimPrefix(token, "$")
		name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return token
	})
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
