package command

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// executor implements Executor interface
type executor struct {
	shell   ShellExecutor
	history *History
	logger  zerolog.Logger
}

// NewExecutor creates a new executor that records every invocation in history
func NewExecutor(shell ShellExecutor, history *History, logger zerolog.Logger) Executor {
	if history == nil {
		history = NewHistory()
	}
	return &executor{
		shell:   shell,
		history: history,
		logger:  logger,
	}
}

// Execute runs cmd and returns stdout, or stdout merged with stderr when
// cmd.CombineOutput is set. Failures are returned as *CommandError.
func (e *executor) Execute(cmd Command) (string, error) {
	start := time.Now()
	e.logger.Trace().Strs("args", cmd.Args).Str("dir", cmd.WorkDir).Msg("executing")

	out, err := e.shell.Execute(cmd)
	e.history.Record(cmd.Args, err)

	if err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			// Shell executors outside this package may return plain errors.
			cmdErr = &CommandError{
				Kind:     ErrExit,
				Program:  cmd.Name,
				Args:     append([]string(nil), cmd.Args...),
				Stderr:   out.Stderr,
				ExitCode: out.ExitCode,
				Err:      err,
			}
		}
		e.logger.Debug().
			Strs("args", cmd.Args).
			Stringer("kind", cmdErr.Kind).
			Int("exit_code", cmdErr.ExitCode).
			Dur("elapsed", time.Since(start)).
			Msg("command failed")
		return "", cmdErr
	}

	e.logger.Trace().Strs("args", cmd.Args).Dur("elapsed", time.Since(start)).Msg("command finished")

	if cmd.CombineOutput {
		return combine(out.Stdout, trimTrailingNewline(out.Stderr)), nil
	}
	return out.Stdout, nil
}

func combine(stdout, stderr string) string {
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}
