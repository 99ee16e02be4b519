//go:build !windows

package launcher

import "os/exec"

// consoleCommand falls back to a plain bash invocation on platforms without
// cmd.exe. Activation scripts are batch files, so this mirrors the original
// behavior of degrading rather than refusing outright.
func consoleCommand(commandLine string) []string {
	return []string{"/bin/bash", "-c", commandLine}
}

func applyConsoleAttrs(cmd *exec.Cmd) {}
