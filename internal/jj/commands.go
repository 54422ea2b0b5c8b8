package jj

import (
	"fmt"

	"github.com/satococoa/jjt/internal/command"
)

// RunNew creates a new change after revision. Maps to `jj new <revision>`
func (c *Commander) RunNew(revision string) error {
	if err := c.mutateVoid(command.JjNew(revision)); err != nil {
		return fmt.Errorf("failed executing jj new: %w", err)
	}
	return nil
}

// RunEdit makes revision the working-copy change. Maps to `jj edit <revision>`
func (c *Commander) RunEdit(revision string, ignoreImmutable bool) error {
	if err := c.mutateVoid(command.JjEdit(revision, ignoreImmutable)); err != nil {
		return fmt.Errorf("failed executing jj edit: %w", err)
	}
	return nil
}

// RunAbandon abandons a commit. Maps to `jj abandon <commit>`
func (c *Commander) RunAbandon(commitID CommitID) error {
	if err := c.mutateVoid(command.JjAbandon(commitID.String())); err != nil {
		return fmt.Errorf("failed executing jj abandon: %w", err)
	}
	return nil
}

// RunDescribe replaces the description of revision.
// Maps to `jj describe <revision> -m <message>`
func (c *Commander) RunDescribe(revision, message string) error {
	if err := c.mutateVoid(command.JjDescribe(revision, message)); err != nil {
		return fmt.Errorf("failed executing jj describe: %w", err)
	}
	return nil
}

// RunSquash squashes the working copy into revision.
// Maps to `jj squash -u --into <revision>`
func (c *Commander) RunSquash(revision string, ignoreImmutable bool) error {
	if err := c.mutateVoid(command.JjSquash(revision, ignoreImmutable)); err != nil {
		return fmt.Errorf("failed executing jj squash: %w", err)
	}
	return nil
}

// CreateBookmark creates a bookmark on the working-copy change.
// Maps to `jj bookmark create <name>`.
//
// jj prints no structured confirmation, so the returned Bookmark is built
// locally: jj only creates local bookmarks and they always resolve. The value
// is true at the moment of creation only.
func (c *Commander) CreateBookmark(name string) (Bookmark, error) {
	if err := c.mutateVoid(command.JjBookmarkCreate(name, "")); err != nil {
		return Bookmark{}, err
	}
	return newLocalBookmark(name, c.now()), nil
}

// CreateBookmarkCommit creates a bookmark pointing at commitID.
// Maps to `jj bookmark create <name> -r <commit>`
func (c *Commander) CreateBookmarkCommit(name string, commitID CommitID) (Bookmark, error) {
	if err := c.mutateVoid(command.JjBookmarkCreate(name, commitID.String())); err != nil {
		return Bookmark{}, err
	}
	return newLocalBookmark(name, c.now()), nil
}

// SetBookmarkCommit moves a bookmark to commitID, backwards moves included.
// Maps to `jj bookmark set <name> -r <commit> --allow-backwards`
func (c *Commander) SetBookmarkCommit(name string, commitID CommitID) error {
	return c.mutateVoid(command.JjBookmarkSet(name, commitID.String()))
}

// RenameBookmark maps to `jj bookmark rename <old> <new>`
func (c *Commander) RenameBookmark(oldName, newName string) error {
	return c.mutateVoid(command.JjBookmarkRename(oldName, newName))
}

// DeleteBookmark deletes a bookmark, leaving a deletion that propagates on
// the next push. Maps to `jj bookmark delete <name>`
func (c *Commander) DeleteBookmark(name string) error {
	return c.mutateVoid(command.JjBookmarkDelete(name))
}

// ForgetBookmark drops all local knowledge of a bookmark without recording a
// deletion. Maps to `jj bookmark forget <name>`
func (c *Commander) ForgetBookmark(name string) error {
	return c.mutateVoid(command.JjBookmarkForget(name))
}

// TrackBookmark maps to `jj bookmark track <name>@<remote>`. A local
// bookmark is rejected with ErrLocalBookmark without running jj.
func (c *Commander) TrackBookmark(bookmark Bookmark) error {
	if err := requireRemote(bookmark); err != nil {
		return err
	}
	return c.mutateVoid(command.JjBookmarkTrack(bookmark.String()))
}

// UntrackBookmark maps to `jj bookmark untrack <name>@<remote>`. A local
// bookmark is rejected with ErrLocalBookmark without running jj.
func (c *Commander) UntrackBookmark(bookmark Bookmark) error {
	if err := requireRemote(bookmark); err != nil {
		return err
	}
	return c.mutateVoid(command.JjBookmarkUntrack(bookmark.String()))
}

func requireRemote(bookmark Bookmark) error {
	if bookmark.IsLocal() {
		return fmt.Errorf("%w: %s", ErrLocalBookmark, bookmark.Name)
	}
	return nil
}

// GitPush pushes either every bookmark or the bookmarks pointing at commitID.
// Maps to `jj git push`. The returned text is jj's progress report.
func (c *Commander) GitPush(allBookmarks, allowNew bool, commitID CommitID) (string, error) {
	return c.mutate(command.JjGitPush(command.GitPushOptions{
		AllBookmarks: allBookmarks,
		AllowNew:     allowNew,
		Revision:     commitID.String(),
	}))
}

// GitFetch maps to `jj git fetch`
func (c *Commander) GitFetch(allRemotes bool) (string, error) {
	return c.mutate(command.JjGitFetch(allRemotes))
}
