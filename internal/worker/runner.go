package worker

import (
	"context"
	"errors"
	"os/exec"
)

// Runner executes a job command and reports its exit code and combined
// stdout/stderr output. Implementations must treat the command as an opaque
// string.
type Runner interface {
	Run(ctx context.Context, command string) (exitCode int, output string)
}

// ShellRunner executes commands through a shell, inheriting the process
// environment.
type ShellRunner struct {
	// Shell overrides the interpreter. Defaults to "sh".
	Shell string
}

// Run executes command via `sh -c`. A command that cannot even be spawned is
// reported as exit 1 with the spawn error as output, so callers handle it
// exactly like an ordinary failure.
func (r ShellRunner) Run(ctx context.Context, command string) (int, string) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), string(output)
		}
		return 1, err.Error()
	}
	return 0, string(output)
}
