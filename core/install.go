package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pkt.systems/envforge/internal/logx"
	"pkt.systems/envforge/internal/pyversions"
	"pkt.systems/envforge/schema"
)

// InstallPython resolves the display version, downloads the installer and
// runs it silently, all as one job. The returned label identifies the job's
// events; the whole pipeline runs off the caller's thread of control and
// delivers exactly one terminal event.
func (s *service) InstallPython(ctx context.Context, display string) (string, error) {
	if display == "" {
		return "", schema.ErrEmptyVersion
	}
	if s.runner == nil {
		return "", schema.ErrRunnerUnavailable
	}
	label := "python-" + display
	go s.installPython(display, label)
	return label, nil
}

func (s *service) installPython(display, label string) {
	ctx := logx.ContextWithJobLogger(context.Background(), s.logger, label)

	full := s.resolver.FullVersion(ctx, display)
	url := s.resolver.InstallerURL(full)
	dest := filepath.Join(s.cfg.StateDir, pyversions.InstallerFileName(full))

	s.logInfo(fmt.Sprintf("Downloading Python %s installer from: %s", full, url))
	lastPercent := -1
	progress := func(written, total int64) {
		if total <= 0 {
			return
		}
		percent := int(written * 100 / total)
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		s.sink.OnOutput(schema.OutputEvent{
			Label: label,
			Line:  fmt.Sprintf("Downloaded %d%% (%d / %d bytes)", percent, written, total),
		})
	}
	if err := s.resolver.Download(ctx, url, dest, progress); err != nil {
		s.logError(fmt.Sprintf("Error downloading Python installer: %v", err))
		s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: 1})
		return
	}
	s.logSuccess(fmt.Sprintf("Python installer downloaded to: %s", dest))

	s.logInfo(fmt.Sprintf("Installing Python %s...", full))
	handle, err := s.runner.Start(ctx, RunRequest{
		Command: []string{dest, "/passive", "/norestart"},
		Label:   label,
	})
	if err != nil {
		s.logError(fmt.Sprintf("Error starting Python installer: %v", err))
		s.removeInstaller(dest)
		s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: -1})
		return
	}
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
	s.removeInstaller(dest)
	if err != nil {
		s.logError(fmt.Sprintf("Error installing Python %s: %v", full, err))
		s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: -1})
		return
	}
	if result.ExitCode == 0 {
		s.logSuccess(fmt.Sprintf("Python %s installed successfully.", full))
	} else {
		s.logError(fmt.Sprintf("Error installing Python %s. Installer exited with code: %d", full, result.ExitCode))
	}
	s.sink.OnJobDone(schema.JobEvent{Label: label, ExitCode: result.ExitCode})
}

func (s *service) removeInstaller(dest string) {
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		s.logError(fmt.Sprintf("Error deleting installer file: %v", err))
	}
}
