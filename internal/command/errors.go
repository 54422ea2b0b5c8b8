package command

import (
	"fmt"
	"strings"
)

// ErrorKind tags why an invocation failed
type ErrorKind int

const (
	// ErrExit means the tool ran and exited with a non-zero status.
	ErrExit ErrorKind = iota + 1
	// ErrLaunch means the process could not be started at all.
	ErrLaunch
	// ErrParse means the tool succeeded but its output had an unexpected shape.
	ErrParse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrExit:
		return "exit"
	case ErrLaunch:
		return "launch"
	case ErrParse:
		return "parse"
	default:
		return "unknown"
	}
}

// CommandError is the tagged outcome of a failed invocation.
//
// Stderr is kept exactly as the subprocess wrote it. Output is the text that
// failed to parse for ErrParse errors. Program is the executable that was
// run, which may be a configured path rather than "jj".
type CommandError struct {
	Kind     ErrorKind
	Program  string
	Args     []string
	Stderr   string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	command := "jj " + strings.Join(e.Args, " ")
	switch e.Kind {
	case ErrExit:
		return fmt.Sprintf("%s: exit status %d: %s", command, e.ExitCode, strings.TrimSpace(e.Stderr))
	case ErrLaunch:
		return fmt.Sprintf("%s: failed to start: %v", command, e.Err)
	case ErrParse:
		return fmt.Sprintf("%s: unexpected output %q: %v", command, e.Output, e.Err)
	default:
		return fmt.Sprintf("%s: %v", command, e.Err)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewParseError builds an ErrParse error for output that did not match the expected shape
func NewParseError(args []string, output string, err error) *CommandError {
	return &CommandError{
		Kind:   ErrParse,
		Args:   append([]string(nil), args...),
		Output: output,
		Err:    err,
	}
}
