package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satococoa/jjt/internal/command"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, "jjt", app.Name)
	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{
		"new", "edit", "abandon", "describe", "squash", "bookmark",
		"push", "fetch", "head", "log", "files", "ui", "init",
	}, names)
}

func TestRevisionCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "new defaults to the working copy",
			args:     []string{"new"},
			expected: []string{"new", "@"},
		},
		{
			name:     "new on a revision",
			args:     []string{"new", "main"},
			expected: []string{"new", "main"},
		},
		{
			name:     "edit",
			args:     []string{"edit", "@-"},
			expected: []string{"edit", "@-"},
		},
		{
			name:     "edit immutable",
			args:     []string{"edit", "--ignore-immutable", "main"},
			expected: []string{"edit", "main", "--ignore-immutable"},
		},
		{
			name:     "abandon resolves the revision first",
			args:     []string{"abandon", "@-"},
			expected: []string{"abandon", testCommitID},
		},
		{
			name:     "describe with message",
			args:     []string{"describe", "-m", "Fix login"},
			expected: []string{"describe", "@", "-m", "Fix login"},
		},
		{
			name:     "describe clears with an empty message",
			args:     []string{"describe", "-m", "", "@-"},
			expected: []string{"describe", "@-", "-m", ""},
		},
		{
			name:     "squash defaults to the parent",
			args:     []string{"squash"},
			expected: []string{"squash", "-u", "--into", "@-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a repository
			shell := &mockShell{}
			setupRepo(t, shell)

			// When: running the command
			_, err := runApp(t, tt.args...)

			// Then: exactly one jj mutation was issued
			require.NoError(t, err)
			assert.Equal(t, [][]string{tt.expected}, shell.mutations())
		})
	}
}

func TestNewCommand_PrintsHead(t *testing.T) {
	shell := &mockShell{}
	setupRepo(t, shell)

	out, err := runApp(t, "new")

	require.NoError(t, err)
	assert.Equal(t, "Working copy now at: kkmpptxzrspx 0123456789ab add feature\n", out)
}

func TestEditCommand_RequiresRevision(t *testing.T) {
	shell := &mockShell{}
	setupRepo(t, shell)

	_, err := runApp(t, "edit")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "revision is required")
	assert.Empty(t, shell.calls())
}

func TestEditCommand_ImmutableHint(t *testing.T) {
	shell := &mockShell{
		failOn:     "edit",
		failStderr: "Error: Commit 0123456789ab is immutable\nHint: Pass `--ignore-immutable` or configure the set of immutable commits\n",
	}
	setupRepo(t, shell)

	_, err := runApp(t, "edit", "main")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed executing jj edit")
	assert.Contains(t, err.Error(), "is immutable")
	assert.Contains(t, err.Error(), "--ignore-immutable")
}

func TestDescribeCommand_Prompt(t *testing.T) {
	shell := &mockShell{description: "old message"}
	setupRepo(t, shell)
	stdinIsTerminal = func() bool { return true }

	var prefilled string
	oldPrompt := promptDescription
	promptDescription = func(current string) (string, error) {
		prefilled = current
		return "new message", nil
	}
	t.Cleanup(func() { promptDescription = oldPrompt })

	_, err := runApp(t, "describe")

	require.NoError(t, err)
	assert.Equal(t, "old message", prefilled)
	assert.Equal(t, [][]string{{"describe", "@", "-m", "new message"}}, shell.mutations())
}

func TestDescribeCommand_NoTerminalNeedsMessage(t *testing.T) {
	shell := &mockShell{}
	setupRepo(t, shell)

	_, err := runApp(t, "describe")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass -m")
	assert.Empty(t, shell.mutations())
}

func TestLaunchFailureNamesConfiguredBinary(t *testing.T) {
	shell := &mockShell{launchFail: true}
	repo := setupRepo(t, shell)
	require.NoError(t, os.WriteFile(filepath.Join(repo, ".jjt.yml"), []byte("jj:\n  binary: /opt/jj/bin/jj\n"), 0o600))

	_, err := runApp(t, "new")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start '/opt/jj/bin/jj'")

	var cmdErr *command.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, command.ErrLaunch, cmdErr.Kind)
}

func TestNotInRepository(t *testing.T) {
	shell := &mockShell{}
	setupRepo(t, shell)
	dir := t.TempDir()
	jjtGetwd = func() (string, error) { return dir, nil }

	_, err := runApp(t, "new")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in a jj repository")
	assert.Empty(t, shell.calls())
}

func TestRepositoryFlagFindsRootFromSubdirectory(t *testing.T) {
	shell := &mockShell{}
	repo := setupRepo(t, shell)
	jjtGetwd = func() (string, error) { return t.TempDir(), nil }

	_, err := runApp(t, "-R", repo+"/src/pkg", "new")

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"new", "@"}}, shell.mutations())
}
