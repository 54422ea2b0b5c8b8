package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/jjt/internal/ui"
	"github.com/satococoa/jjt/internal/watch"
)

// Variable to allow mocking in tests
var runUI = ui.Run

// NewUICommand creates the ui command definition
func NewUICommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Open the interactive bookmarks view",
		Description: "Shows bookmarks and the log of jj commands run in this session.\n" +
			"The view refreshes when jj changes the repository, from this or any other terminal.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Do not watch the repository for changes",
			},
		},
		Action: uiCommand,
	}
}

func uiCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := ui.Options{
		RefreshInterval: s.cfg.UI.RefreshInterval,
		HighlightColor:  s.cfg.UI.HighlightColor,
		FetchAllRemotes: s.cfg.Fetch.AllRemotes,
	}

	if s.cfg.ShouldWatch() && !cmd.Bool("no-watch") {
		watcher, err := watch.New(s.root, watch.DefaultDebounce, s.logger)
		if err != nil {
			s.logger.Warn().Err(err).Msg("repository watch disabled")
		} else {
			defer watcher.Close()
			opts.Changes = watcher.Changes()
		}
	}

	return runUI(s.commander, opts)
}
