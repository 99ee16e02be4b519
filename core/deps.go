package core

import (
	"context"

	"pkt.systems/envforge/internal/pyversions"
	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// Registry discovers environments and probes the external tools.
type Registry interface {
	Venvs(ctx context.Context, dir string) ([]string, error)
	VenvExists(dir, name string) bool
	CondaEnvs(ctx context.Context) []string
	CondaExists(ctx context.Context, name string) bool
	CondaAvailable(ctx context.Context) bool
	PythonAvailable(ctx context.Context, version string) bool
}

// SelectionStore persists the current environment selection.
type SelectionStore interface {
	Load() (schema.Selection, bool)
	Save(sel schema.Selection) error
}

// VersionResolver maps display versions to full releases and fetches installers.
type VersionResolver interface {
	FullVersion(ctx context.Context, display string) string
	InstallerURL(full string) string
	Download(ctx context.Context, url, dest string, progress pyversions.ProgressFunc) error
}

// ActivationLauncher opens an activated terminal for an environment.
type ActivationLauncher interface {
	Launch(ctx context.Context, kind schema.EnvKind, name string) error
}

// ServiceDeps carries the service's collaborators. Nil fields fall back to
// the local implementations, except Runner which must be injected.
type ServiceDeps struct {
	Runner   Runner
	Registry Registry
	Store    SelectionStore
	Resolver VersionResolver
	Launcher ActivationLauncher
	Sink     EventSink
	Logger   pslog.Logger
}
