package command

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Execute(t *testing.T) {
	t.Run("should return stdout and record success", func(t *testing.T) {
		// Given: an executor with a mock shell that succeeds
		mockShell := &mockShellExecutor{output: Output{Stdout: "abc123"}}
		history := NewHistory()
		executor := NewExecutor(mockShell, history, zerolog.Nop())

		// When: executing a jj command
		cmd := JjNew("@")
		result, err := executor.Execute(cmd)

		// Then: stdout is returned and the exact args are recorded
		require.NoError(t, err)
		assert.Equal(t, "abc123", result)
		last, ok := history.Last()
		require.True(t, ok)
		assert.Equal(t, []string{"new", "@"}, last.Args)
		assert.True(t, last.Success)
		assert.NotEmpty(t, last.ID)
	})

	t.Run("should pass work dir and env to the shell", func(t *testing.T) {
		mockShell := &mockShellExecutor{}
		executor := NewExecutor(mockShell, nil, zerolog.Nop())

		cmd := JjLog("")
		cmd.WorkDir = "/path/to/repo"
		cmd.Env = []string{"NO_COLOR=1"}
		_, err := executor.Execute(cmd)

		require.NoError(t, err)
		require.Len(t, mockShell.executed, 1)
		assert.Equal(t, "/path/to/repo", mockShell.executed[0].WorkDir)
		assert.Equal(t, []string{"NO_COLOR=1"}, mockShell.executed[0].Env)
	})

	t.Run("should record failure and keep stderr verbatim", func(t *testing.T) {
		// Given: a shell that exits non-zero with multi-line stderr
		stderr := "Error: Commit 1234 is immutable\nHint: Pass `--ignore-immutable`\n"
		mockShell := &mockShellExecutor{
			output: Output{Stderr: stderr, ExitCode: 1},
			err: &CommandError{
				Kind:     ErrExit,
				Args:     []string{"edit", "1234"},
				Stderr:   stderr,
				ExitCode: 1,
			},
		}
		history := NewHistory()
		executor := NewExecutor(mockShell, history, zerolog.Nop())

		// When: executing the command
		_, err := executor.Execute(JjEdit("1234", false))

		// Then: the CommandError carries the exact stderr and history marks failure
		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, ErrExit, cmdErr.Kind)
		assert.Equal(t, stderr, cmdErr.Stderr)
		assert.Equal(t, 1, cmdErr.ExitCode)

		last, ok := history.Last()
		require.True(t, ok)
		assert.False(t, last.Success)
		assert.Equal(t, "edit", last.Args[0])
	})

	t.Run("should wrap plain shell errors as exit errors", func(t *testing.T) {
		mockShell := &mockShellExecutor{
			output: Output{Stderr: "boom", ExitCode: 2},
			err:    errors.New("exit status 2"),
		}
		executor := NewExecutor(mockShell, nil, zerolog.Nop())

		_, err := executor.Execute(JjAbandon("@"))

		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, ErrExit, cmdErr.Kind)
		assert.Equal(t, "boom", cmdErr.Stderr)
		assert.Equal(t, 2, cmdErr.ExitCode)
	})

	t.Run("should merge stderr into the result when requested", func(t *testing.T) {
		mockShell := &mockShellExecutor{output: Output{
			Stdout: "",
			Stderr: "Changes to push to origin:\n  Add bookmark main to 1234\n",
		}}
		executor := NewExecutor(mockShell, nil, zerolog.Nop())

		result, err := executor.Execute(JjGitPush(GitPushOptions{AllBookmarks: true}))

		require.NoError(t, err)
		assert.Equal(t, "Changes to push to origin:\n  Add bookmark main to 1234", result)
	})

	t.Run("should join both streams when both have text", func(t *testing.T) {
		mockShell := &mockShellExecutor{output: Output{Stdout: "out", Stderr: "err\n"}}
		executor := NewExecutor(mockShell, nil, zerolog.Nop())

		result, err := executor.Execute(JjGitFetch(false))

		require.NoError(t, err)
		assert.Equal(t, "out\nerr", result)
	})

	t.Run("should ignore stderr for plain commands", func(t *testing.T) {
		mockShell := &mockShellExecutor{output: Output{Stdout: "out", Stderr: "warning"}}
		executor := NewExecutor(mockShell, nil, zerolog.Nop())

		result, err := executor.Execute(JjLog(""))

		require.NoError(t, err)
		assert.Equal(t, "out", result)
	})
}

func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		expected []string
	}{
		{
			name:     "exit",
			err:      &CommandError{Kind: ErrExit, Args: []string{"new", "@"}, ExitCode: 1, Stderr: "Error: bad\n"},
			expected: []string{"jj new @", "exit status 1", "Error: bad"},
		},
		{
			name:     "launch",
			err:      &CommandError{Kind: ErrLaunch, Args: []string{"new"}, Err: errors.New("executable file not found")},
			expected: []string{"failed to start", "executable file not found"},
		},
		{
			name:     "parse",
			err:      NewParseError([]string{"log"}, "garbage", errors.New("invalid commit id")),
			expected: []string{"unexpected output", "garbage", "invalid commit id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, expected := range tt.expected {
				assert.Contains(t, tt.err.Error(), expected)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewParseError(nil, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse", err.Kind.String())
}

// Mock implementation for testing
type mockShellExecutor struct {
	executed []Command
	output   Output
	err      error
}

func (m *mockShellExecutor) Execute(cmd Command) (Output, error) {
	m.executed = append(m.executed, cmd)
	return m.output, m.err
}
