//go:build windows

package launcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// consoleCommand wraps the activation line in an interactive cmd.exe session
// that stays open after the command runs.
func consoleCommand(commandLine string) []string {
	return []string{"cmd.exe", "/K", commandLine}
}

// applyConsoleAttrs opens the shell in its own console window instead of
// inheriting ours.
func applyConsoleAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
}
