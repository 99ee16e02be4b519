package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pkt.systems/envforge/internal/launcher"
	"pkt.systems/envforge/internal/logx"
	"pkt.systems/envforge/internal/pyversions"
	"pkt.systems/envforge/internal/registry"
	"pkt.systems/envforge/internal/selection"
	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// Service is the UI-facing core: discovery, creation, selection, activation
// and python installation. Long-running operations start a job on the process
// runner and return immediately; their output lines and single terminal event
// arrive through the EventSink.
type Service interface {
	Environments(ctx context.Context) []schema.Environment
	Venvs(ctx context.Context) ([]string, error)
	CondaEnvs(ctx context.Context) []string
	CondaAvailable(ctx context.Context) bool
	PythonAvailable(ctx context.Context, version string) bool
	CreateVenv(ctx context.Context, name, version string) (string, error)
	CreateCondaEnv(ctx context.Context, name, version string) (string, error)
	InstallPython(ctx context.Context, display string) (string, error)
	Select(ctx context.Context, kind schema.EnvKind, name string) error
	Selected(ctx context.Context) (schema.Selection, bool)
	Activate(ctx context.Context, kind schema.EnvKind, name string) error
}

// service implements the core service behavior.
type service struct {
	cfg      schema.ServiceConfig
	runner   Runner
	registry Registry
	store    SelectionStore
	resolver VersionResolver
	launcher ActivationLauncher
	sink     EventSink
	logger   pslog.Logger
}

// NewService constructs the core service implementation.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, err
	}
	if deps.Registry == nil {
		deps.Registry = registry.New(registry.Config{
			PyBinary:    cfg.PyBinary,
			CondaBinary: cfg.CondaBinary,
		})
	}
	if deps.Store == nil {
		store, err := selection.NewStoreWithLogger(filepath.Join(cfg.StateDir, "selection.json"), deps.Logger)
		if err != nil {
			return nil, err
		}
		deps.Store = store
	}
	if deps.Resolver == nil {
		deps.Resolver = pyversions.New(pyversions.Config{})
	}
	if deps.Launcher == nil {
		deps.Launcher = launcher.New(launcher.Config{
			WorkspaceDir: cfg.WorkspaceDir,
			CondaBinary:  cfg.CondaBinary,
		})
	}
	if deps.Sink == nil {
		deps.Sink = NopSink{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &service{
		cfg:      cfg,
		runner:   deps.Runner,
		registry: deps.Registry,
		store:    deps.Store,
		resolver: deps.Resolver,
		launcher: deps.Launcher,
		sink:     deps.Sink,
		logger:   logger,
	}, nil
}

func (s *service) Venvs(ctx context.Context) ([]string, error) {
	return s.registry.Venvs(ctx, s.cfg.WorkspaceDir)
}

func (s *service) CondaEnvs(ctx context.Context) []string {
	return s.registry.CondaEnvs(ctx)
}

func (s *service) CondaAvailable(ctx context.Context) bool {
	return s.registry.CondaAvailable(ctx)
}

func (s *service) PythonAvailable(ctx context.Context, version string) bool {
	return s.registry.PythonAvailable(ctx, version)
}

// Environments combines venv and conda discovery for display. Discovery
// failures degrade to an empty list per kind; they never fail the call.
func (s *service) Environments(ctx context.Context) []schema.Environment {
	var envs []schema.Environment
	venvs, err := s.registry.Venvs(ctx, s.cfg.WorkspaceDir)
	if err != nil {
		s.logError(fmt.Sprintf("Error listing virtual environments: %v", err))
	}
	for _, name := range venvs {
		envs = append(envs, schema.Environment{Kind: schema.EnvKindVenv, Name: name})
	}
	if s.registry.CondaAvailable(ctx) {
		for _, name := range s.registry.CondaEnvs(ctx) {
			envs = append(envs, schema.Environment{Kind: schema.EnvKindConda, Name: name})
		}
	}
	return envs
}

// CreateVenv starts a venv creation job and returns the final environment
// name the job will produce. The selection is persisted when the job ends
// with exit code 0.
func (s *service) CreateVenv(ctx context.Context, name, version string) (string, error) {
	if version == "" {
		return "", schema.ErrEmptyVersion
	}
	if s.runner == nil {
		return "", schema.ErrRunnerUnavailable
	}
	base := registry.SanitizeName(name)
	final := registry.UniqueName(base, s.cfg.DefaultEnvName, func(candidate string) bool {
		return s.registry.VenvExists(s.cfg.WorkspaceDir, candidate)
	})

	handle, err := s.runner.Start(ctx, RunRequest{
		Command: []string{s.cfg.PyBinary, "-" + version, "-m", "venv", final},
		Dir:     s.cfg.WorkspaceDir,
		Label:   final,
	})
	if err != nil {
		s.logError(fmt.Sprintf("Error creating virtual environment %q: %v", final, err))
		return "", err
	}
	s.logInfo(fmt.Sprintf("Creating virtual environment %q (python %s)...", final, version))
	go s.drain(handle, final,
		fmt.Sprintf("Virtual environment %q created.", final),
		fmt.Sprintf("Failed to create virtual environment %q", final),
		func() { s.saveSelection(schema.EnvKindVenv, final) },
	)
	return final, nil
}

// CreateCondaEnv starts a conda creation job, mirroring CreateVenv.
func (s *service) CreateCondaEnv(ctx context.Context, name, version string) (string, error) {
	if version == "" {
		return "", schema.ErrEmptyVersion
	}
	if s.runner == nil {
		return "", schema.ErrRunnerUnavailable
	}
	if !s.registry.CondaAvailable(ctx) {
		s.logError("Conda is not installed or not on PATH.")
		return "", schema.ErrCondaUnavailable
	}
	base := registry.SanitizeName(name)
	final := registry.UniqueName(base, s.cfg.DefaultEnvName, func(candidate string) bool {
		return s.registry.CondaExists(ctx, candidate)
	})

	handle, err := s.runner.Start(ctx, RunRequest{
		Command: []string{s.cfg.CondaBinary, "create", "-n", final, "python=" + version, "-y"},
		Label:   final,
	})
	if err != nil {
		s.logError(fmt.Sprintf("Error creating conda environment %q: %v", final, err))
		return "", err
	}
	s.logInfo(fmt.Sprintf("Creating conda environment %q (python %s)...", final, version))
	go s.drain(handle, final,
		fmt.Sprintf("Conda environment %q created.", final),
		fmt.Sprintf("Failed to create conda environment %q", final),
		func() { s.saveSelection(schema.EnvKindConda, final) },
	)
	return final, nil
}

// Select persists the current environment selection.
func (s *service) Select(ctx context.Context, kind schema.EnvKind, name string) error {
	_ = ctx
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", schema.ErrInvalidKind, kind)
	}
	if name == "" {
		return schema.ErrEmptyName
	}
	return s.store.Save(schema.Selection{Kind: kind, Name: name})
}

// Selected reports the persisted selection, if any.
func (s *service) Selected(ctx context.Context) (schema.Selection, bool) {
	_ = ctx
	return s.store.Load()
}

// Activate opens a terminal with the environment activated. Validation
// happens before any process is spawned.
func (s *service) Activate(ctx context.Context, kind schema.EnvKind, name string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", schema.ErrInvalidKind, kind)
	}
	if name == "" {
		s.logError("Error: No environment name provided.")
		return schema.ErrEmptyName
	}
	s.logInfo(fmt.Sprintf("Launching terminal with activation for: %s (Type: %s)", name, kind))
	if err := s.launcher.Launch(ctx, kind, name); err != nil {
		s.logError(fmt.Sprintf("Error launching activated terminal: %v", err))
		return err
	}
	s.logSuccess("Activated terminal launched.")
	return nil
}

// drain relays a job's output lines in order, then delivers the single
// terminal event once the stream ended and the process was waited on. Jobs
// run to completion; the drain context is deliberately detached from the
// caller's.
func (s *service) drain(handle RunHandle, label, successMsg, failureMsg string, onSuccess func()) {
	ctx := logx.ContextWithJobLogger(context.Background(), s.logger, label)
	defer func() { _ = handle.Close() }()

	stream := handle.Lines()
	for {
		line, err := stream.Next(ctx)
		if err != nil {
			break
		}
		s.sink.OnOutput(schema.OutputEvent{Label: label, Line: line})
	}

	result, err := handle.Wait(ctx)
	if err != nil {
		s.logError(fmt.Sprintf("%s: %v", failureMsg, err))
		s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: -1})
		return
	}
	if result.ExitCode == 0 {
		if onSuccess != nil {
			onSuccess()
		}
		s.logSuccess(successMsg)
	} else {
		s.logError(fmt.Sprintf("%s: exit code %d", failureMsg, result.ExitCode))
	}
	s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: result.ExitCode})
}

func (s *service) saveSelection(kind schema.EnvKind, name string) {
	if err := s.store.Save(schema.Selection{Kind: kind, Name: name}); err != nil {
		s.logError(fmt.Sprintf("Error saving selected environment: %v", err))
	}
}

func (s *service) logInfo(msg string) {
	s.sink.OnLog(schema.NewLogEvent(schema.LevelInfo, msg))
}

func (s *service) logSuccess(msg string) {
	s.sink.OnLog(schema.NewLogEvent(schema.LevelSuccess, msg))
}

func (s *service) logError(msg string) {
	s.sink.OnLog(schema.NewLogEvent(schema.LevelError, msg))
}
