package jj

import (
	"fmt"
	"strings"
)

const headTemplate = `change_id ++ "\t" ++ commit_id ++ "\t" ++ description.first_line()`

// Head is a snapshot of the working-copy change at the moment it was queried.
// A new Head replaces the old one whenever the working copy moves.
type Head struct {
	ChangeID    ChangeID
	CommitID    CommitID
	Description string // first line only
}

func parseHead(output string) (Head, error) {
	fields := strings.SplitN(output, "\t", 3)
	if len(fields) != 3 {
		return Head{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}

	changeID, err := ParseChangeID(fields[0])
	if err != nil {
		return Head{}, err
	}
	commitID, err := ParseCommitID(fields[1])
	if err != nil {
		return Head{}, err
	}

	return Head{
		ChangeID:    changeID,
		CommitID:    commitID,
		Description: fields[2],
	}, nil
}
