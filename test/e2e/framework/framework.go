package framework

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satococoa/jjt/internal/testutil"
)

const (
	dirPerm  = 0755
	filePerm = 0600
)

type TestEnvironment struct {
	t         *testing.T
	tmpDir    string
	jjBinary  string
	jjtBinary string
	jjEnv     []string
	cleanup   []func()
}

// NewTestEnvironment builds jjt and prepares an isolated jj configuration.
// Tests are skipped when jj is not installed.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	tmpDir := t.TempDir()
	env := &TestEnvironment{
		t:        t,
		tmpDir:   tmpDir,
		jjBinary: testutil.RequireJj(t),
		jjEnv:    testutil.JjEnv(t),
		cleanup:  []func(){},
	}

	env.buildJJT()

	return env
}

func (e *TestEnvironment) buildJJT() {
	e.t.Helper()

	jjtBinary := filepath.Join(e.tmpDir, "jjt")
	if runtime := os.Getenv("JJT_E2E_BINARY"); runtime != "" {
		jjtBinary = runtime
		if _, err := os.Stat(jjtBinary); err != nil {
			e.t.Fatalf("Specified jjt binary not found: %s", jjtBinary)
		}
	} else {
		projectRoot := e.findProjectRoot()
		cmd := exec.Command("go", "build", "-o", jjtBinary, "./cmd/jjt")
		cmd.Dir = projectRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			e.t.Fatalf("Failed to build jjt binary: %v\nOutput: %s", err, output)
		}
	}

	jjtBinary = filepath.Clean(jjtBinary)
	if !filepath.IsAbs(jjtBinary) {
		absPath, err := filepath.Abs(jjtBinary)
		if err != nil {
			e.t.Fatalf("Failed to get absolute path for binary: %v", err)
		}
		jjtBinary = absPath
	}

	e.jjtBinary = jjtBinary
}

func (e *TestEnvironment) findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			e.t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

// CreateTestRepo creates a git-backed jj repository with one described
// commit holding README.md, and a fresh working-copy change on top.
func (e *TestEnvironment) CreateTestRepo(name string) *TestRepo {
	e.t.Helper()

	repoDir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(repoDir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}

	repo := &TestRepo{env: e, path: repoDir}
	repo.Jj("git", "init")
	repo.CommitFile("README.md", "# Test Repository", "Initial commit")
	return repo
}

func (e *TestEnvironment) CreateNonRepoDir(name string) *TestRepo {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}

	return &TestRepo{
		env:  e,
		path: dir,
	}
}

func (e *TestEnvironment) RunJJT(args ...string) (string, error) {
	for _, arg := range args {
		if err := validateArg(arg); err != nil {
			return "", fmt.Errorf("invalid argument: %w", err)
		}
	}

	cmd := exec.Command(e.jjtBinary, args...)
	cmd.Env = e.environ()
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (e *TestEnvironment) writeFile(path, content string) {
	e.t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func (e *TestEnvironment) environ() []string {
	env := append(os.Environ(), "HOME="+e.tmpDir)
	return append(env, e.jjEnv...)
}

func (e *TestEnvironment) TmpDir() string {
	return e.tmpDir
}

func (e *TestEnvironment) Cleanup() {
	for _, fn := range e.cleanup {
		fn()
	}
}

type TestRepo struct {
	env  *TestEnvironment
	path string
}

func (r *TestRepo) RunJJT(args ...string) (string, error) {
	for _, arg := range args {
		if err := validateArg(arg); err != nil {
			return "", fmt.Errorf("invalid argument: %w", err)
		}
	}

	cmd := exec.Command(r.env.jjtBinary, args...)
	cmd.Dir = r.path
	cmd.Env = r.env.environ()

	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Jj runs jj directly in the repository and fails the test on error
func (r *TestRepo) Jj(args ...string) string {
	r.env.t.Helper()
	return testutil.RunJj(r.env.t, r.env.jjBinary, r.path, r.env.jjEnv, args...)
}

// CommitFile writes a file into the working copy, describes the change and
// starts a new one on top
func (r *TestRepo) CommitFile(filename, content, message string) {
	r.env.t.Helper()
	r.env.writeFile(filepath.Join(r.path, filename), content)
	r.Jj("commit", "-m", message)
}

// WriteFile writes a file into the working copy
func (r *TestRepo) WriteFile(filename, content string) {
	r.env.t.Helper()
	r.env.writeFile(filepath.Join(r.path, filename), content)
}

func (r *TestRepo) Path() string {
	return r.path
}

func (r *TestRepo) WriteConfig(content string) {
	r.env.writeFile(filepath.Join(r.path, ".jjt.yml"), content)
}

func (r *TestRepo) HasFile(path string) bool {
	_, err := os.Stat(filepath.Join(r.path, path))
	return err == nil
}

// Template renders a single revision with a jj template
func (r *TestRepo) Template(revision, template string) string {
	r.env.t.Helper()
	output := r.Jj("log", "--no-graph", "--limit", "1", "-r", revision, "-T", template)
	return strings.TrimSpace(output)
}

// CommitID returns the commit id revision resolves to
func (r *TestRepo) CommitID(revision string) string {
	return r.Template(revision, "commit_id")
}

// Description returns the full description of revision
func (r *TestRepo) Description(revision string) string {
	return r.Template(revision, "description")
}

// Bookmarks lists local bookmark names
func (r *TestRepo) Bookmarks() []string {
	r.env.t.Helper()
	output := r.Jj("bookmark", "list", "-T", `name ++ "\n"`)

	var names []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// validateArg checks if an argument is safe to pass to exec.Command
func validateArg(arg string) error {
	if arg == "" {
		return nil
	}

	// Revsets use ( ) and | legitimately, so only reject what a test never needs
	dangerousChars := []string{";", "&", "$", "`", "<", ">", "\n", "\r"}
	for _, char := range dangerousChars {
		if strings.Contains(arg, char) {
			return fmt.Errorf("argument contains potentially dangerous character: %s", char)
		}
	}

	return nil
}
