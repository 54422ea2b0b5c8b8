package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/satococoa/jjt/internal/jj"
)

// Variable to allow mocking in tests
var confirmPushAll = func() (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Push all bookmarks?").
				Description("Every local bookmark is pushed to its remote, deletions included.").
				Affirmative("Push").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// NewPushCommand creates the push command definition
func NewPushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Push bookmarks to the git remote",
		Description: "Pushes the bookmarks pointing at a revision (the working copy's parent by default), " +
			"or every bookmark with --all.\n\n" +
			"Examples:\n" +
			"  jjt push                  # Push bookmarks on @-\n" +
			"  jjt push -r main --allow-new\n" +
			"  jjt push --all --yes",
		Flags: []cli.Flag{
			revisionFlag("@-", "Push the bookmarks pointing at this revision"),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Push all bookmarks",
			},
			&cli.BoolFlag{
				Name:  "allow-new",
				Usage: "Allow creating bookmarks on the remote (push.allow_new in .jjt.yml)",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
		},
		Action: pushCommand,
	}
}

func pushCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	w := outWriter(cmd)
	all := cmd.Bool("all")
	allowNew := cmd.Bool("allow-new") || s.cfg.Push.AllowNew

	if all && !cmd.Bool("yes") && stdinIsTerminal() {
		confirmed, err := confirmPushAll()
		if err != nil {
			return err
		}
		if !confirmed {
			_, err := fmt.Fprintln(w, "Push cancelled")
			return err
		}
	}

	var commitID jj.CommitID
	if !all {
		commitID, err = s.commander.ResolveRevision(cmd.String("revision"))
		if err != nil {
			return failed("jj log", err)
		}
	}

	output, err := s.commander.GitPush(all, allowNew, commitID)
	if err != nil {
		return failed("jj git push", err)
	}
	return writeReport(w, output)
}

// NewFetchCommand creates the fetch command definition
func NewFetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch from the git remote",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all-remotes",
				Usage: "Fetch from every configured remote (fetch.all_remotes in .jjt.yml)",
			},
		},
		Action: fetchCommand,
	}
}

func fetchCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	allRemotes := cmd.Bool("all-remotes") || s.cfg.Fetch.AllRemotes
	output, err := s.commander.GitFetch(allRemotes)
	if err != nil {
		return failed("jj git fetch", err)
	}
	return writeReport(outWriter(cmd), output)
}

// writeReport prints jj's progress text, if any
func writeReport(w io.Writer, output string) error {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, output)
	return err
}
