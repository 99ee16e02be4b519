package schema

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestEnvKindValid(t *testing.T) {
	for _, kind := range []EnvKind{EnvKindVenv, EnvKindConda} {
		if !kind.Valid() {
			t.Fatalf("%q should be valid", kind)
		}
	}
	for _, kind := range []EnvKind{"", "docker", "Venv", "CONDA"} {
		if kind.Valid() {
			t.Fatalf("%q should not be valid", kind)
		}
	}
}

func TestLogEventString(t *testing.T) {
	event := LogEvent{
		Time:    time.Date(2024, 3, 9, 14, 5, 9, 0, time.UTC),
		Level:   LevelSuccess,
		Message: "Virtual environment \"ml\" created.",
	}
	want := `[14:05:09] [SUCCESS] Virtual environment "ml" created.`
	if got := event.String(); got != want {
		t.Fatalf("log line mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestNewLogEventStampsNow(t *testing.T) {
	before := time.Now()
	event := NewLogEvent(LevelError, "boom")
	after := time.Now()
	if event.Time.Before(before) || event.Time.After(after) {
		t.Fatalf("timestamp out of range: %v", event.Time)
	}
	if event.Level != LevelError || event.Message != "boom" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !strings.Contains(event.String(), "[ERROR] boom") {
		t.Fatalf("unexpected rendering: %s", event.String())
	}
}

func TestNormalizeServiceConfigDefaults(t *testing.T) {
	cfg, err := NormalizeServiceConfig(ServiceConfig{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.WorkspaceDir != "." {
		t.Fatalf("workspace default: %q", cfg.WorkspaceDir)
	}
	if cfg.StateDir == "" {
		t.Fatalf("state dir default missing")
	}
	if cfg.PyBinary != "py" || cfg.CondaBinary != "conda" {
		t.Fatalf("tool defaults: %q %q", cfg.PyBinary, cfg.CondaBinary)
	}
	if cfg.DefaultEnvName != DefaultEnvName {
		t.Fatalf("default env name: %q", cfg.DefaultEnvName)
	}
}

func TestNormalizeServiceConfigKeepsOverrides(t *testing.T) {
	in := ServiceConfig{
		WorkspaceDir:   "/srv/envs",
		StateDir:       "/var/lib/envforge",
		PyBinary:       "py3",
		CondaBinary:    "mamba",
		DefaultEnvName: "scratch",
	}
	cfg, err := NormalizeServiceConfig(in)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg != in {
		t.Fatalf("overrides lost: %+v", cfg)
	}
}

func TestSentinelMessages(t *testing.T) {
	// Wrapped sentinels must stay matchable through fmt verbs.
	err := fmt.Errorf("%w: %q", ErrInvalidKind, "docker")
	if !strings.Contains(err.Error(), "docker") {
		t.Fatalf("wrap lost detail: %v", err)
	}
}
