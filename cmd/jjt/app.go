package main

import "github.com/urfave/cli/v3"

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "jjt",
		Usage: "Typed front-end for Jujutsu (jj)",
		Description: "jjt turns everyday jj operations into short commands, keeps a log of every jj " +
			"invocation it makes, and offers an interactive bookmarks view.",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repository",
				Aliases: []string{"R"},
				Usage:   "Path to the jj repository (defaults to the current directory)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file (defaults to .jjt.yml in the repository root)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, error, disabled",
			},
		},
		Commands: []*cli.Command{
			NewNewCommand(),
			NewEditCommand(),
			NewAbandonCommand(),
			NewDescribeCommand(),
			NewSquashCommand(),
			NewBookmarkCommand(),
			NewPushCommand(),
			NewFetchCommand(),
			NewHeadCommand(),
			NewLogCommand(),
			NewFilesCommand(),
			NewUICommand(),
			NewInitCommand(),
		},
	}
}
