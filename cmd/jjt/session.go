package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/satococoa/jjt/internal/command"
	"github.com/satococoa/jjt/internal/config"
	"github.com/satococoa/jjt/internal/errors"
	"github.com/satococoa/jjt/internal/jj"
	"github.com/satococoa/jjt/internal/logging"
)

// Variables to allow mocking in tests
var (
	jjtGetwd         = os.Getwd
	newShellExecutor = func() command.ShellExecutor {
		return command.NewRealShellExecutor()
	}
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
)

const jjDirName = ".jj"

// session is everything a subcommand needs to talk to one repository
type session struct {
	root      string
	cfg       *config.Config
	logger    zerolog.Logger
	commander *jj.Commander
	closer    io.Closer
}

func openSession(cmd *cli.Command) (*session, error) {
	root, err := repoRootFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	logger, closer, err := logging.New(cfg.Logging, errWriter(cmd))
	if err != nil {
		return nil, err
	}

	commander := jj.NewCommander(root, jj.Options{
		Binary: cfg.Jj.Binary,
		Env:    cfg.Environ(),
		Shell:  newShellExecutor(),
		Logger: logger,
	})

	return &session{
		root:      root,
		cfg:       cfg,
		logger:    logger,
		commander: commander,
		closer:    closer,
	}, nil
}

// loadConfig reads --config when given, else .jjt.yml in root
func loadConfig(cmd *cli.Command, root string) (*config.Config, error) {
	if configPath := cmd.String("config"); configPath != "" {
		cfg, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, errors.ConfigLoadFailed(configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, errors.ConfigLoadFailed(filepath.Join(root, config.ConfigFileName), err)
	}
	return cfg, nil
}

// repoRootFromFlags resolves -R, or the current directory, to the repository root
func repoRootFromFlags(cmd *cli.Command) (string, error) {
	start := cmd.String("repository")
	if start == "" {
		cwd, err := jjtGetwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		start = cwd
	}
	return findRepoRoot(start)
}

func (s *session) Close() error {
	return s.closer.Close()
}

// findRepoRoot walks up from start to the directory holding .jj
func findRepoRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.NotInJjRepository(start)
	}

	dir := abs
	for {
		if info, err := os.Stat(filepath.Join(dir, jjDirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NotInJjRepository(abs)
		}
		dir = parent
	}
}

// failed converts a Commander error into the message shown to the user
func failed(intent string, err error) error {
	return errors.FromCommandError(intent, err)
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
