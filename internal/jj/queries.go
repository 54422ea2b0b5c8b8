package jj

import (
	"github.com/satococoa/jjt/internal/command"
)

// Read-only queries. None of them take the mutation lock and none are cached:
// every call asks jj again.

// GetCurrentHead returns the working-copy change
func (c *Commander) GetCurrentHead() (Head, error) {
	cmd := command.JjLogTemplate("@", headTemplate)
	output, err := c.run(cmd)
	if err != nil {
		return Head{}, err
	}

	head, err := parseHead(output)
	if err != nil {
		return Head{}, command.NewParseError(cmd.Args, output, err)
	}
	return head, nil
}

// GetCommitDescription returns the full description of commitID exactly as
// stored. jj terminates non-empty descriptions with a newline, which the
// runner strips with the output's trailing newline.
func (c *Commander) GetCommitDescription(commitID CommitID) (string, error) {
	return c.run(command.JjLogTemplate(commitID.String(), "description"))
}

// ResolveRevision resolves a single-revision expression to its commit id
func (c *Commander) ResolveRevision(revision string) (CommitID, error) {
	cmd := command.JjLogTemplate(revision, "commit_id")
	output, err := c.run(cmd)
	if err != nil {
		return CommitID{}, err
	}

	id, err := ParseCommitID(output)
	if err != nil {
		return CommitID{}, command.NewParseError(cmd.Args, output, err)
	}
	return id, nil
}

// GetBookmarksList lists local bookmarks, plus remote ones when allRemotes is set
func (c *Commander) GetBookmarksList(allRemotes bool) ([]Bookmark, error) {
	cmd := command.JjBookmarkList(allRemotes, bookmarkTemplate)
	output, err := c.run(cmd)
	if err != nil {
		return nil, err
	}

	bookmarks, err := parseBookmarks(output, allRemotes)
	if err != nil {
		return nil, command.NewParseError(cmd.Args, output, err)
	}
	return bookmarks, nil
}

// GetLog returns jj's rendered log graph for revset (jj's default when empty)
func (c *Commander) GetLog(revset string) (string, error) {
	return c.run(command.JjLog(revset))
}

// GetFilesList returns the paths changed by commitID
func (c *Commander) GetFilesList(commitID CommitID) ([]File, error) {
	cmd := command.JjDiffSummary(commitID.String())
	output, err := c.run(cmd)
	if err != nil {
		return nil, err
	}

	files, err := parseFiles(output)
	if err != nil {
		return nil, command.NewParseError(cmd.Args, output, err)
	}
	return files, nil
}
