package jj

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrLocalBookmark is returned when a remote-only operation is given a
// local bookmark.
var ErrLocalBookmark = errors.New("not a remote bookmark")

// gitRemote is jj's pseudo-remote for refs of a colocated git repository
const gitRemote = "git"

const bookmarkTemplate = `name ++ "\t" ++ if(remote, remote, "") ++ "\t" ++ ` +
	`if(present, "1", "0") ++ "\t" ++ if(tracked, "1", "0") ++ "\t" ++ ` +
	`if(normal_target, normal_target.committer().timestamp().format("%s"), "0") ++ "\n"`

// Bookmark is a named pointer to a commit, local or on a remote.
//
// Values are snapshots: they are not updated when the bookmark later moves
// or is deleted.
type Bookmark struct {
	Name      string
	Remote    string // empty for a local bookmark
	Present   bool   // false when the ref is kept only as a deletion marker
	Tracked   bool
	Timestamp time.Time // for ordering in the UI only
}

// IsLocal reports whether b is a local bookmark
func (b Bookmark) IsLocal() bool {
	return b.Remote == ""
}

// String renders b the way jj accepts it on the command line: name or name@remote
func (b Bookmark) String() string {
	if b.IsLocal() {
		return b.Name
	}
	return b.Name + "@" + b.Remote
}

// Same reports whether b and other are the same logical bookmark across
// local and remote scope
func (b Bookmark) Same(other Bookmark) bool {
	return b.Name == other.Name
}

func newLocalBookmark(name string, now time.Time) Bookmark {
	return Bookmark{
		Name:      name,
		Present:   true,
		Timestamp: now,
	}
}

func parseBookmarks(output string, allRemotes bool) ([]Bookmark, error) {
	var bookmarks []Bookmark
	for i, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		bookmark, err := parseBookmarkLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if bookmark.Remote == gitRemote {
			continue
		}
		if !allRemotes && !bookmark.IsLocal() {
			continue
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks, nil
}

func parseBookmarkLine(line string) (Bookmark, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return Bookmark{}, fmt.Errorf("expected 5 tab-separated fields, got %d", len(fields))
	}
	if fields[0] == "" {
		return Bookmark{}, fmt.Errorf("empty bookmark name")
	}

	present, err := parseFlag(fields[2])
	if err != nil {
		return Bookmark{}, fmt.Errorf("present: %w", err)
	}
	tracked, err := parseFlag(fields[3])
	if err != nil {
		return Bookmark{}, fmt.Errorf("tracked: %w", err)
	}
	seconds, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Bookmark{}, fmt.Errorf("timestamp: %w", err)
	}

	bookmark := Bookmark{
		Name:    fields[0],
		Remote:  fields[1],
		Present: present,
		Tracked: tracked,
	}
	// 0 marks a conflicted or absent target
	if seconds != 0 {
		bookmark.Timestamp = time.Unix(seconds, 0)
	}
	return bookmark, nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q", s)
	}
}
