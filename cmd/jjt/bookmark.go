package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/jjt/internal/errors"
	"github.com/satococoa/jjt/internal/jj"
)

// NewBookmarkCommand creates the bookmark command group
func NewBookmarkCommand() *cli.Command {
	return &cli.Command{
		Name:    "bookmark",
		Aliases: []string{"b"},
		Usage:   "Manage bookmarks",
		Description: "Create, move and remove bookmarks, and control which remote bookmarks are tracked.\n\n" +
			"Examples:\n" +
			"  jjt bookmark list --all-remotes\n" +
			"  jjt bookmark create feature/auth -r @-\n" +
			"  jjt bookmark set main -r @-\n" +
			"  jjt bookmark track main@origin",
		Commands: []*cli.Command{
			newBookmarkListCommand(),
			newBookmarkCreateCommand(),
			newBookmarkSetCommand(),
			newBookmarkRenameCommand(),
			newBookmarkDeleteCommand(),
			newBookmarkForgetCommand(),
			newBookmarkTrackCommand(),
			newBookmarkUntrackCommand(),
		},
	}
}

func revisionFlag(value, usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "revision",
		Aliases: []string{"r"},
		Usage:   usage,
		Value:   value,
	}
}

func newBookmarkListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List bookmarks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all-remotes",
				Aliases: []string{"a"},
				Usage:   "Include remote bookmarks",
			},
		},
		Action: bookmarkListCommand,
	}
}

func bookmarkListCommand(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	bookmarks, err := s.commander.GetBookmarksList(cmd.Bool("all-remotes"))
	if err != nil {
		return failed("jj bookmark list", err)
	}
	return displayBookmarks(outWriter(cmd), bookmarks)
}

func displayBookmarks(w io.Writer, bookmarks []jj.Bookmark) error {
	if len(bookmarks) == 0 {
		_, err := fmt.Fprintln(w, "No bookmarks found")
		return err
	}

	// Remote bookmarks listed right after their local counterpart are shown
	// as "  @remote" beneath it, the way jj groups them.
	var local *jj.Bookmark
	for i, bookmark := range bookmarks {
		if bookmark.IsLocal() {
			local = &bookmarks[i]
		}

		var flags []string
		if !bookmark.Present {
			flags = append(flags, "deleted")
		}
		if !bookmark.IsLocal() && bookmark.Tracked {
			flags = append(flags, "tracked")
		}

		line := bookmark.String()
		if !bookmark.IsLocal() && local != nil && local.Same(bookmark) {
			line = "  @" + bookmark.Remote
		}
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newBookmarkCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a bookmark",
		ArgsUsage: "<name>",
		Flags:     []cli.Flag{revisionFlag("", "Revision to point at (defaults to the working copy)")},
		Action:    bookmarkCreateCommand,
	}
}

func bookmarkCreateCommand(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.BookmarkNameRequired("jjt bookmark create <name> [-r <revision>]")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var bookmark jj.Bookmark
	if revision := cmd.String("revision"); revision != "" {
		commitID, err := s.commander.ResolveRevision(revision)
		if err != nil {
			return failed("jj log", err)
		}
		bookmark, err = s.commander.CreateBookmarkCommit(name, commitID)
		if err != nil {
			return failed("jj bookmark create", err)
		}
	} else {
		bookmark, err = s.commander.CreateBookmark(name)
		if err != nil {
			return failed("jj bookmark create", err)
		}
	}

	_, err = fmt.Fprintf(outWriter(cmd), "Created bookmark %s\n", bookmark)
	return err
}

func newBookmarkSetCommand() *cli.Command {
	return &cli.Command{
		Name:        "set",
		Usage:       "Move a bookmark, backwards or sideways included",
		ArgsUsage:   "<name>",
		Description: "Points the bookmark at the given revision, creating it when it does not exist.",
		Flags:       []cli.Flag{revisionFlag("@", "Revision to point at")},
		Action:      bookmarkSetCommand,
	}
}

func bookmarkSetCommand(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.BookmarkNameRequired("jjt bookmark set <name> [-r <revision>]")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	commitID, err := s.commander.ResolveRevision(cmd.String("revision"))
	if err != nil {
		return failed("jj log", err)
	}
	if err := s.commander.SetBookmarkCommit(name, commitID); err != nil {
		return failed("jj bookmark set", err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "Moved bookmark %s to %s\n", name, commitID.Short(shortIDLength))
	return err
}

func newBookmarkRenameCommand() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a bookmark",
		ArgsUsage: "<old> <new>",
		Action:    bookmarkRenameCommand,
	}
}

func bookmarkRenameCommand(_ context.Context, cmd *cli.Command) error {
	oldName, newName := cmd.Args().Get(0), cmd.Args().Get(1)
	if oldName == "" || newName == "" {
		return errors.BookmarkNameRequired("jjt bookmark rename <old> <new>")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.commander.RenameBookmark(oldName, newName); err != nil {
		return failed("jj bookmark rename", err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "Renamed bookmark %s to %s\n", oldName, newName)
	return err
}

func newBookmarkDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete a bookmark",
		ArgsUsage:   "<name>",
		Description: "Deletes the local bookmark. The deletion reaches tracked remotes on the next push.",
		Action:      bookmarkDeleteCommand,
	}
}

func bookmarkDeleteCommand(_ context.Context, cmd *cli.Command) error {
	return runBookmarkNameCommand(cmd, "delete", "Deleted", func(s *session, name string) error {
		return s.commander.DeleteBookmark(name)
	})
}

func newBookmarkForgetCommand() *cli.Command {
	return &cli.Command{
		Name:        "forget",
		Usage:       "Forget a bookmark",
		ArgsUsage:   "<name>",
		Description: "Drops the bookmark and its remote-tracking state without recording a deletion.",
		Action:      bookmarkForgetCommand,
	}
}

func bookmarkForgetCommand(_ context.Context, cmd *cli.Command) error {
	return runBookmarkNameCommand(cmd, "forget", "Forgot", func(s *session, name string) error {
		return s.commander.ForgetBookmark(name)
	})
}

func runBookmarkNameCommand(cmd *cli.Command, verb, done string, run func(*session, string) error) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.BookmarkNameRequired(fmt.Sprintf("jjt bookmark %s <name>", verb))
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := run(s, name); err != nil {
		return failed("jj bookmark "+verb, err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "%s bookmark %s\n", done, name)
	return err
}

func newBookmarkTrackCommand() *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Start tracking a remote bookmark",
		ArgsUsage: "<name>@<remote>",
		Action:    bookmarkTrackCommand,
	}
}

func bookmarkTrackCommand(_ context.Context, cmd *cli.Command) error {
	return runRemoteBookmarkCommand(cmd, "track", "Started tracking", func(s *session, b jj.Bookmark) error {
		return s.commander.TrackBookmark(b)
	})
}

func newBookmarkUntrackCommand() *cli.Command {
	return &cli.Command{
		Name:      "untrack",
		Usage:     "Stop tracking a remote bookmark",
		ArgsUsage: "<name>@<remote>",
		Action:    bookmarkUntrackCommand,
	}
}

func bookmarkUntrackCommand(_ context.Context, cmd *cli.Command) error {
	return runRemoteBookmarkCommand(cmd, "untrack", "Stopped tracking", func(s *session, b jj.Bookmark) error {
		return s.commander.UntrackBookmark(b)
	})
}

func runRemoteBookmarkCommand(
	cmd *cli.Command, verb, done string, run func(*session, jj.Bookmark) error,
) error {
	ref := cmd.Args().First()
	if ref == "" {
		return errors.BookmarkNameRequired(fmt.Sprintf("jjt bookmark %s <name>@<remote>", verb))
	}
	bookmark, err := parseRemoteBookmark(ref)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := run(s, bookmark); err != nil {
		return failed("jj bookmark "+verb, err)
	}

	_, err = fmt.Fprintf(outWriter(cmd), "%s %s\n", done, bookmark)
	return err
}

// parseRemoteBookmark splits name@remote. Bookmark names may contain '@',
// remote names may not, so the last '@' separates them.
func parseRemoteBookmark(ref string) (jj.Bookmark, error) {
	i := strings.LastIndex(ref, "@")
	if i <= 0 || i == len(ref)-1 {
		return jj.Bookmark{}, errors.RemoteBookmarkRequired(ref)
	}
	return jj.Bookmark{Name: ref[:i], Remote: ref[i+1:], Present: true}, nil
}
