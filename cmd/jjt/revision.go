package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/satococoa/jjt/internal/errors"
	"github.com/satococoa/jjt/internal/jj"
)

const (
	defaultNewRevision    = "@"
	defaultSquashRevision = "@-"
	shortIDLength         = 12
)

// Variable to allow mocking in tests
var promptDescription = func(current string) (string, error) {
	message := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				Description("Leave empty to clear the description").
				Value(&message),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return message, nil
}

func ignoreImmutableFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "ignore-immutable",
		Usage: "Allow rewriting immutable revisions",
	}
}

// NewNewCommand creates the new command definition
func NewNewCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new change",
		ArgsUsage: "[revision]",
		Description: "Creates an empty change on top of the given revision (the working copy by default) " +
			"and makes it the working copy.\n\n" +
			"Examples:\n" +
			"  jjt new          # Start a new change on top of @\n" +
			"  jjt new main     # Start a new change on top of main",
		Action: newCommand,
	}
}

func newCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	revision := argOrDefault(cmd, 0, defaultNewRevision)
	if err := s.commander.RunNew(revision); err != nil {
		return failed("jj new", err)
	}
	return printHead(outWriter(cmd), s.commander)
}

// NewEditCommand creates the edit command definition
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:        "edit",
		Usage:       "Make a revision the working copy",
		ArgsUsage:   "<revision>",
		Description: "Checks out the given revision for editing.",
		Flags:       []cli.Flag{ignoreImmutableFlag()},
		Action:      editCommand,
	}
}

func editCommand(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.RevisionRequired("jjt edit <revision>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.commander.RunEdit(cmd.Args().First(), cmd.Bool("ignore-immutable")); err != nil {
		return failed("jj edit", err)
	}
	return printHead(outWriter(cmd), s.commander)
}

// NewAbandonCommand creates the abandon command definition
func NewAbandonCommand() *cli.Command {
	return &cli.Command{
		Name:        "abandon",
		Usage:       "Abandon a revision",
		ArgsUsage:   "<revision>",
		Description: "Abandons the commit the revision resolves to. Descendants are rebased onto its parent.",
		Action:      abandonCommand,
	}
}

func abandonCommand(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.RevisionRequired("jjt abandon <revision>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	commitID, err := s.commander.ResolveRevision(cmd.Args().First())
	if err != nil {
		return failed("jj log", err)
	}
	if err := s.commander.RunAbandon(commitID); err != nil {
		return failed("jj abandon", err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "Abandoned %s\n", commitID.Short(shortIDLength))
	return err
}

// NewDescribeCommand creates the describe command definition
func NewDescribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Aliases:   []string{"desc"},
		Usage:     "Set the description of a revision",
		ArgsUsage: "[revision]",
		Description: "Replaces the description of the given revision (the working copy by default).\n" +
			"Without -m an editor form opens, prefilled with the current description.\n\n" +
			"Examples:\n" +
			"  jjt describe -m \"Fix login\"   # Describe the working copy\n" +
			"  jjt describe @- -m \"\"         # Clear the parent's description",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "New description",
			},
		},
		Action: describeCommand,
	}
}

func describeCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	revision := argOrDefault(cmd, 0, defaultNewRevision)

	message := cmd.String("message")
	if !cmd.IsSet("message") {
		if !stdinIsTerminal() {
			return fmt.Errorf("a description is required: pass -m when stdin is not a terminal")
		}
		commitID, err := s.commander.ResolveRevision(revision)
		if err != nil {
			return failed("jj log", err)
		}
		current, err := s.commander.GetCommitDescription(commitID)
		if err != nil {
			return failed("jj log", err)
		}
		message, err = promptDescription(current)
		if err != nil {
			return err
		}
	}

	if err := s.commander.RunDescribe(revision, message); err != nil {
		return failed("jj describe", err)
	}
	return printHead(outWriter(cmd), s.commander)
}

// NewSquashCommand creates the squash command definition
func NewSquashCommand() *cli.Command {
	return &cli.Command{
		Name:      "squash",
		Usage:     "Move the working copy's changes into another revision",
		ArgsUsage: "[revision]",
		Description: "Squashes the working copy into the given revision (the parent by default), " +
			"keeping the destination's description.",
		Flags:  []cli.Flag{ignoreImmutableFlag()},
		Action: squashCommand,
	}
}

func squashCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	revision := argOrDefault(cmd, 0, defaultSquashRevision)
	if err := s.commander.RunSquash(revision, cmd.Bool("ignore-immutable")); err != nil {
		return failed("jj squash", err)
	}
	return printHead(outWriter(cmd), s.commander)
}

func printHead(w io.Writer, commander *jj.Commander) error {
	head, err := commander.GetCurrentHead()
	if err != nil {
		return failed("jj log", err)
	}

	_, err = fmt.Fprintf(w, "Working copy now at: %s\n", formatHead(head))
	return err
}

func formatHead(head jj.Head) string {
	description := head.Description
	if description == "" {
		description = "(no description set)"
	}
	return fmt.Sprintf("%s %s %s",
		head.ChangeID.Short(shortIDLength), head.CommitID.Short(shortIDLength), description)
}

func argOrDefault(cmd *cli.Command, index int, fallback string) string {
	if value := cmd.Args().Get(index); value != "" {
		return value
	}
	return fallback
}
