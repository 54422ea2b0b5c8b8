package jj

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satococoa/jjt/internal/command"
	"github.com/satococoa/jjt/internal/testutil"
)

func newIntegrationCommander(t *testing.T) *Commander {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repoDir, env := testutil.NewJjRepo(t)
	return NewCommander(repoDir, Options{Env: env, Logger: zerolog.Nop()})
}

func lastArgs(t *testing.T, c *Commander) []string {
	t.Helper()
	last, ok := c.History().Last()
	require.True(t, ok)
	return last.Args
}

func TestIntegration_RunNew(t *testing.T) {
	c := newIntegrationCommander(t)

	head, err := c.GetCurrentHead()
	require.NoError(t, err)

	require.NoError(t, c.RunNew(head.CommitID.String()))
	assert.Equal(t, "new", lastArgs(t, c)[0])

	newHead, err := c.GetCurrentHead()
	require.NoError(t, err)
	assert.NotEqual(t, head, newHead)
	assert.NotEqual(t, head.CommitID, newHead.CommitID)
}

func TestIntegration_RunEdit(t *testing.T) {
	c := newIntegrationCommander(t)

	head, err := c.GetCurrentHead()
	require.NoError(t, err)
	require.NoError(t, c.RunNew(head.CommitID.String()))

	newHead, err := c.GetCurrentHead()
	require.NoError(t, err)
	assert.NotEqual(t, head, newHead)

	require.NoError(t, c.RunEdit(head.CommitID.String(), false))
	assert.Equal(t, "edit", lastArgs(t, c)[0])

	restored, err := c.GetCurrentHead()
	require.NoError(t, err)
	assert.Equal(t, head, restored)
}

func TestIntegration_RunAbandon(t *testing.T) {
	c := newIntegrationCommander(t)

	head, err := c.GetCurrentHead()
	require.NoError(t, err)

	require.NoError(t, c.RunAbandon(head.CommitID))
	assert.Equal(t, "abandon", lastArgs(t, c)[0])

	newHead, err := c.GetCurrentHead()
	require.NoError(t, err)
	assert.NotEqual(t, head, newHead)
}

func TestIntegration_RunDescribe(t *testing.T) {
	for _, message := range []string{"AAA", ""} {
		t.Run("message "+message, func(t *testing.T) {
			c := newIntegrationCommander(t)

			head, err := c.GetCurrentHead()
			require.NoError(t, err)

			require.NoError(t, c.RunDescribe(head.CommitID.String(), message))
			assert.Equal(t, "describe", lastArgs(t, c)[0])

			described, err := c.GetCurrentHead()
			require.NoError(t, err)
			description, err := c.GetCommitDescription(described.CommitID)
			require.NoError(t, err)
			assert.Equal(t, message, description)
		})
	}
}

func TestIntegration_RunEditUnknownRevision(t *testing.T) {
	c := newIntegrationCommander(t)

	err := c.RunEdit("no-such-revision", false)

	var cmdErr *command.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, command.ErrExit, cmdErr.Kind)
	assert.NotZero(t, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "no-such-revision")

	last, ok := c.History().Last()
	require.True(t, ok)
	assert.False(t, last.Success)
}

func TestIntegration_CreateBookmark(t *testing.T) {
	c := newIntegrationCommander(t)

	bookmark, err := c.CreateBookmark("test")
	require.NoError(t, err)

	bookmarks, err := c.GetBookmarksList(false)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, Bookmark{
		Name:      bookmark.Name,
		Remote:    bookmark.Remote,
		Present:   bookmark.Present,
		Tracked:   bookmark.Tracked,
		Timestamp: bookmarks[0].Timestamp,
	}, bookmarks[0])
}

func TestIntegration_CreateBookmarkCommit(t *testing.T) {
	c := newIntegrationCommander(t)

	// bookmark create defaults to the working copy, so move off it first
	head, err := c.GetCurrentHead()
	require.NoError(t, err)
	require.NoError(t, c.RunNew(head.CommitID.String()))

	bookmark, err := c.CreateBookmarkCommit("test", head.CommitID)
	require.NoError(t, err)

	resolved, err := c.ResolveRevision(bookmark.Name)
	require.NoError(t, err)
	assert.Equal(t, head.CommitID, resolved)
}

func TestIntegration_SetBookmarkCommitBackwards(t *testing.T) {
	c := newIntegrationCommander(t)

	oldHead, err := c.GetCurrentHead()
	require.NoError(t, err)
	require.NoError(t, c.RunNew(oldHead.CommitID.String()))
	newHead, err := c.GetCurrentHead()
	require.NoError(t, err)
	require.NotEqual(t, oldHead, newHead)

	bookmark, err := c.CreateBookmark("test")
	require.NoError(t, err)

	resolved, err := c.ResolveRevision(bookmark.Name)
	require.NoError(t, err)
	assert.Equal(t, newHead.CommitID, resolved)

	// oldHead is an ancestor of newHead
	require.NoError(t, c.SetBookmarkCommit(bookmark.Name, oldHead.CommitID))

	resolved, err = c.ResolveRevision(bookmark.Name)
	require.NoError(t, err)
	assert.Equal(t, oldHead.CommitID, resolved)
}

func TestIntegration_RenameBookmark(t *testing.T) {
	c := newIntegrationCommander(t)

	bookmark, err := c.CreateBookmark("test1")
	require.NoError(t, err)

	require.NoError(t, c.RenameBookmark(bookmark.Name, "test2"))

	bookmarks, err := c.GetBookmarksList(false)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, Bookmark{
		Name:      "test2",
		Present:   true,
		Timestamp: bookmarks[0].Timestamp,
	}, bookmarks[0])
}

func TestIntegration_DeleteAndForgetBookmark(t *testing.T) {
	tests := []struct {
		name   string
		remove func(c *Commander, name string) error
	}{
		{"delete", (*Commander).DeleteBookmark},
		{"forget", (*Commander).ForgetBookmark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newIntegrationCommander(t)

			bookmark, err := c.CreateBookmark("test")
			require.NoError(t, err)

			bookmarks, err := c.GetBookmarksList(false)
			require.NoError(t, err)
			require.Len(t, bookmarks, 1)

			require.NoError(t, tt.remove(c, bookmark.Name))

			bookmarks, err = c.GetBookmarksList(false)
			require.NoError(t, err)
			assert.Empty(t, bookmarks)
		})
	}
}

func TestIntegration_GetFilesList(t *testing.T) {
	c := newIntegrationCommander(t)

	head, err := c.GetCurrentHead()
	require.NoError(t, err)

	files, err := c.GetFilesList(head.CommitID)
	require.NoError(t, err)
	assert.Empty(t, files)
}
