// Package jj turns high-level intents into jj invocations and parses jj's
// textual output back into typed values.
//
// Every method is a blocking round trip to the jj binary. Mutating intents
// are serialized per Commander; read-only queries may run concurrently with
// them (for example from a background refresh).
package jj

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/satococoa/jjt/internal/command"
)

// Options configures a Commander
type Options struct {
	Binary string                // jj executable, defaults to "jj"
	Env    []string              // extra environment for every invocation
	Shell  command.ShellExecutor // defaults to the os/exec implementation
	Logger zerolog.Logger
}

// Commander issues jj commands against one repository and keeps a history
// of everything it ran.
type Commander struct {
	repoPath string
	binary   string
	env      []string
	executor command.Executor
	history  *command.History
	logger   zerolog.Logger
	now      func() time.Time

	// mu serializes mutating commands against the repository.
	mu sync.Mutex
}

// NewCommander creates a Commander for the repository at repoPath
func NewCommander(repoPath string, opts Options) *Commander {
	if opts.Binary == "" {
		opts.Binary = command.Program
	}
	if opts.Shell == nil {
		opts.Shell = command.NewRealShellExecutor()
	}

	history := command.NewHistory()
	return &Commander{
		repoPath: repoPath,
		binary:   opts.Binary,
		env:      opts.Env,
		executor: command.NewExecutor(opts.Shell, history, opts.Logger),
		history:  history,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// RepoPath returns the repository the Commander operates on
func (c *Commander) RepoPath() string {
	return c.repoPath
}

// History returns the log of every invocation issued by this Commander
func (c *Commander) History() *command.History {
	return c.history
}

// Execute runs jj with args and returns its stdout. It is meant for
// read-only templated queries; it does not take the mutation lock.
func (c *Commander) Execute(args ...string) (string, error) {
	return c.run(command.Command{Name: command.Program, Args: args})
}

func (c *Commander) run(cmd command.Command) (string, error) {
	cmd.Name = c.binary
	cmd.WorkDir = c.repoPath
	cmd.Env = c.env
	return c.executor.Execute(cmd)
}

// mutate runs a repository-changing command while holding the mutation lock
func (c *Commander) mutate(cmd command.Command) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Trace().Strs("args", cmd.Args).Msg("mutating repository")
	return c.run(cmd)
}

func (c *Commander) mutateVoid(cmd command.Command) error {
	_, err := c.mutate(cmd)
	return err
}
