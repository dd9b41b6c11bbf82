package tmux

import (
	"fmt"
	"strings"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// RunCommand executes a tmux command line such as "new-window -n logs"
// against the server at socketPath.
func RunCommand(socketPath, command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("tmux command required")
	}
	args := append(baseArgs(socketPath), fields...)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("tmux %s: %w", fields[0], err)
	}
	return nil
}
