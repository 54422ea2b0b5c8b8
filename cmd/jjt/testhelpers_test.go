package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satococoa/jjt/internal/command"
)

const (
	testCommitID = "0123456789abcdef0123456789abcdef01234567"
	testChangeID = "kkmpptxzrspxrzommnulwmwkkqwworpl"
)

// mockShell answers jj queries with canned output and records every call
type mockShell struct {
	mu          sync.Mutex
	executed    [][]string
	description string
	bookmarks   string
	files       string
	remote      string // stderr of git push / git fetch
	failOn      string // joined-args prefix that fails
	failStderr  string
	launchFail  bool // every call fails as if the binary were missing
}

func (m *mockShell) Execute(cmd command.Command) (command.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed = append(m.executed, slices.Clone(cmd.Args))

	if m.launchFail {
		return command.Output{ExitCode: -1}, &command.CommandError{
			Kind:     command.ErrLaunch,
			Program:  cmd.Name,
			Args:     slices.Clone(cmd.Args),
			ExitCode: -1,
			Err:      errors.New("executable file not found"),
		}
	}

	joined := strings.Join(cmd.Args, " ")
	if m.failOn != "" && strings.HasPrefix(joined, m.failOn) {
		return command.Output{Stderr: m.failStderr, ExitCode: 1}, errors.New("exit status 1")
	}

	switch cmd.Args[0] {
	case "log":
		switch template := valueAfter(cmd.Args, command.FlagTemplate); {
		case template == "commit_id":
			return command.Output{Stdout: testCommitID}, nil
		case template == "description":
			return command.Output{Stdout: m.description}, nil
		case strings.HasPrefix(template, "change_id"):
			return command.Output{Stdout: testChangeID + "\t" + testCommitID + "\tadd feature"}, nil
		default:
			return command.Output{Stdout: "@  kkmpptxz test 2025-01-01\n│  add feature"}, nil
		}
	case "bookmark":
		if cmd.Args[1] == "list" {
			return command.Output{Stdout: m.bookmarks}, nil
		}
	case "diff":
		return command.Output{Stdout: m.files}, nil
	case "git":
		return command.Output{Stderr: m.remote}, nil
	}
	return command.Output{}, nil
}

func (m *mockShell) calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.executed)
}

// mutations drops the read-only queries from calls
func (m *mockShell) mutations() [][]string {
	var out [][]string
	for _, args := range m.calls() {
		if args[0] == "log" {
			continue
		}
		if args[0] == "bookmark" && args[1] == "list" {
			continue
		}
		out = append(out, args)
	}
	return out
}

func valueAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

// setupRepo points the CLI at a fake repository backed by shell
func setupRepo(t *testing.T, shell *mockShell) string {
	t.Helper()

	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".jj"), 0o755))

	oldGetwd, oldShell, oldTerminal := jjtGetwd, newShellExecutor, stdinIsTerminal
	jjtGetwd = func() (string, error) { return repo, nil }
	newShellExecutor = func() command.ShellExecutor { return shell }
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		jjtGetwd, newShellExecutor, stdinIsTerminal = oldGetwd, oldShell, oldTerminal
	})

	return repo
}

// runApp runs jjt with args and returns what it printed
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(context.Background(), append([]string{"jjt", "--log-level", "disabled"}, args...))
	return stdout.String(), err
}
