package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewHeadCommand creates the head command definition
func NewHeadCommand() *cli.Command {
	return &cli.Command{
		Name:   "head",
		Usage:  "Show the working-copy change",
		Action: headCommand,
	}
}

func headCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	head, err := s.commander.GetCurrentHead()
	if err != nil {
		return failed("jj log", err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "Change ID:   %s\nCommit ID:   %s\nDescription: %s\n",
		head.ChangeID, head.CommitID, head.Description)
	return err
}

// NewLogCommand creates the log command definition
func NewLogCommand() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     "Show jj's log graph",
		ArgsUsage: "[revset]",
		Action:    logCommand,
	}
}

func logCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	output, err := s.commander.GetLog(cmd.Args().First())
	if err != nil {
		return failed("jj log", err)
	}
	return writeReport(outWriter(cmd), output)
}

// NewFilesCommand creates the files command definition
func NewFilesCommand() *cli.Command {
	return &cli.Command{
		Name:      "files",
		Usage:     "List the files a revision changed",
		ArgsUsage: "[revision]",
		Action:    filesCommand,
	}
}

func filesCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	commitID, err := s.commander.ResolveRevision(argOrDefault(cmd, 0, defaultNewRevision))
	if err != nil {
		return failed("jj log", err)
	}
	files, err := s.commander.GetFilesList(commitID)
	if err != nil {
		return failed("jj diff", err)
	}

	w := outWriter(cmd)
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, "No files changed")
		return err
	}
	for _, file := range files {
		if _, err := fmt.Fprintf(w, "%s %s\n", file.Status, file.Path); err != nil {
			return err
		}
	}
	return nil
}
