package schema

import "errors"

var (
	// ErrInvalidKind indicates an unrecognized environment kind.
	ErrInvalidKind = errors.New("invalid environment kind")
	// ErrEmptyName indicates a required environment name was empty.
	ErrEmptyName = errors.New("empty environment name")
	// ErrEmptyVersion indicates a required python version was empty.
	ErrEmptyVersion = errors.New("empty python version")
	// ErrEmptyCommand indicates a job was submitted without an argument vector.
	ErrEmptyCommand = errors.New("empty command")
	// ErrToolMissing indicates the external executable does not exist on the host.
	ErrToolMissing = errors.New("executable not found")
	// ErrCondaUnavailable indicates the conda tool is not installed or not working.
	ErrCondaUnavailable = errors.New("conda not available")
	// ErrRunnerUnavailable indicates no process runner is configured.
	ErrRunnerUnavailable = errors.New("runner not configured")
)
