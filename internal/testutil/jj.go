// Package testutil provides helpers shared across tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testConfig keeps tests independent of the developer's own jj config.
const testConfig = `[user]
name = "Test User"
email = "test@example.com"

[ui]
color = "never"
paginate = "never"

[snapshot]
auto-track = "all()"
`

// RequireJj skips the test when no jj binary is on PATH.
func RequireJj(t *testing.T) string {
	t.Helper()

	path, err := exec.LookPath("jj")
	if err != nil {
		t.Skip("jj not installed; skipping integration test")
	}
	return path
}

// JjEnv writes an isolated jj config and returns the environment entries
// that point jj at it.
func JjEnv(t *testing.T) []string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("Failed to write jj config: %v", err)
	}

	return []string{
		"JJ_CONFIG=" + configPath,
		"JJ_USER=Test User",
		"JJ_EMAIL=test@example.com",
	}
}

// NewJjRepo initializes a git-backed jj repository in a temporary directory.
// It returns the repository path and the environment every jj invocation
// against it should use.
func NewJjRepo(t *testing.T) (string, []string) {
	t.Helper()

	binary := RequireJj(t)
	env := JjEnv(t)
	repoDir := t.TempDir()

	RunJj(t, binary, repoDir, env, "git", "init")
	return repoDir, env
}

// RunJj runs jj in dir and fails the test on error.
func RunJj(t *testing.T, binary, dir string, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("jj %v failed: %v\n%s", args, err, output)
	}
	return string(output)
}
