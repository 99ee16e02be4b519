package appconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want, err := DefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("config mismatch:\nwant: %+v\ngot:  %+v", want, cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `config_version: 1
workspace_dir: /srv/envs
python:
  versions:
    - "3.12"
tools:
  conda: /opt/conda/bin/conda
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkspaceDir != "/srv/envs" {
		t.Fatalf("workspace dir not applied: %q", cfg.WorkspaceDir)
	}
	if !reflect.DeepEqual(cfg.Python.Versions, []string{"3.12"}) {
		t.Fatalf("versions not applied: %v", cfg.Python.Versions)
	}
	if cfg.Tools.Conda != "/opt/conda/bin/conda" {
		t.Fatalf("conda binary not applied: %q", cfg.Tools.Conda)
	}
	// Untouched keys keep their defaults.
	if cfg.Tools.Py != "py" {
		t.Fatalf("py default lost: %q", cfg.Tools.Py)
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("config_version: 99\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("ENVFORGE_TEST_ROOT", "/data/forge")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `config_version: 1
workspace_dir: $ENVFORGE_TEST_ROOT/work
state_dir: ${ENVFORGE_TEST_ROOT}/state
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkspaceDir != "/data/forge/work" {
		t.Fatalf("workspace dir not expanded: %q", cfg.WorkspaceDir)
	}
	if cfg.StateDir != "/data/forge/state" {
		t.Fatalf("state dir not expanded: %q", cfg.StateDir)
	}
}

func TestLoadKeepsUnknownVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `config_version: 1
workspace_dir: $ENVFORGE_DEFINITELY_UNSET/work
state_dir: ${ENVFORGE_DEFINITELY_UNSET}/state
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkspaceDir != "$ENVFORGE_DEFINITELY_UNSET/work" {
		t.Fatalf("unset variable must be preserved: %q", cfg.WorkspaceDir)
	}
	// The braced spelling keeps its braces too.
	if cfg.StateDir != "${ENVFORGE_DEFINITELY_UNSET}/state" {
		t.Fatalf("unset braced variable must be preserved: %q", cfg.StateDir)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("unexpected path %q", written)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	want, err := DefaultConfig()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("round trip mismatch:\nwant: %+v\ngot:  %+v", want, cfg)
	}
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := WriteDefault(path, false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
}
