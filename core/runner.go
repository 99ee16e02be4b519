package core

import "context"

// Runner starts external processes and exposes their merged output stream.
type Runner interface {
	Start(ctx context.Context, req RunRequest) (RunHandle, error)
}

// RunRequest describes one external command invocation.
type RunRequest struct {
	// Command is the argument vector; Command[0] is the executable.
	Command []string
	// Dir is the working directory, or empty for the caller's.
	Dir string
	// Label is an opaque caller-supplied string echoed in the terminal event.
	Label string
}

// RunHandle exposes the output stream and process lifecycle of one job.
type RunHandle interface {
	Lines() LineStream
	Wait(ctx context.Context) (RunResult, error)
	Close() error
}

// LineStream yields output lines in the order the child produced them.
// Next returns io.EOF once the child closes its output stream.
type LineStream interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// RunResult describes the process outcome.
type RunResult struct {
	ExitCode int
	Label    string
}
