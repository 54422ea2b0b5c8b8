package command

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// realShellExecutor implements ShellExecutor using os/exec
type realShellExecutor struct{}

// NewRealShellExecutor creates a new shell executor that executes real commands
func NewRealShellExecutor() ShellExecutor {
	return &realShellExecutor{}
}

// Execute runs the command to completion. There is no timeout and the
// process is not cancellable once spawned.
func (s *realShellExecutor) Execute(c Command) (Output, error) {
	cmd := exec.Command(c.Name, c.Args...)
	if c.WorkDir != "" {
		cmd.Dir = c.WorkDir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Stdout: trimTrailingNewline(stdout.String()),
		Stderr: stderr.String(),
	}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &CommandError{
			Kind:     ErrExit,
			Program:  c.Name,
			Args:     append([]string(nil), c.Args...),
			Stderr:   out.Stderr,
			ExitCode: out.ExitCode,
			Err:      err,
		}
	}

	out.ExitCode = -1
	return out, &CommandError{
		Kind:     ErrLaunch,
		Program:  c.Name,
		Args:     append([]string(nil), c.Args...),
		ExitCode: -1,
		Err:      err,
	}
}

func trimTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
