package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/envforge/schema"
)

func TestLaunchRejectsEmptyName(t *testing.T) {
	l := New(Config{})
	if err := l.Launch(context.Background(), schema.EnvKindVenv, ""); !errors.Is(err, schema.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestLaunchRejectsUnknownKind(t *testing.T) {
	l := New(Config{})
	if err := l.Launch(context.Background(), "docker", "env"); !errors.Is(err, schema.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestVenvCommandLine(t *testing.T) {
	script := filepath.Join("work", "ml", "Scripts", "activate.bat")
	line := "call " + script + " && where python && python --version"
	argv := consoleCommand(line)
	if len(argv) < 2 {
		t.Fatalf("unexpected argv: %v", argv)
	}
	joined := strings.Join(argv, " ")
	if !strings.Contains(joined, "activate.bat") {
		t.Fatalf("activation script missing from argv: %v", argv)
	}
	if !strings.Contains(joined, "python --version") {
		t.Fatalf("version report missing from argv: %v", argv)
	}
}

func TestCondaCommandLine(t *testing.T) {
	argv := consoleCommand("conda activate ml && conda info --envs")
	joined := strings.Join(argv, " ")
	if !strings.Contains(joined, "conda activate ml") {
		t.Fatalf("activation missing from argv: %v", argv)
	}
	if !strings.Contains(joined, "conda info --envs") {
		t.Fatalf("env listing missing from argv: %v", argv)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	l := New(Config{})
	if l.workspaceDir != "." {
		t.Fatalf("expected default workspace dir, got %q", l.workspaceDir)
	}
	if l.conda != "conda" {
		t.Fatalf("expected default conda binary, got %q", l.conda)
	}
}
