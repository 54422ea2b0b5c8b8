package jj

import (
	"fmt"
	"strings"
)

// FileStatus is the one-letter change kind printed by jj diff --summary
type FileStatus byte

const (
	FileModified FileStatus = 'M'
	FileAdded    FileStatus = 'A'
	FileDeleted  FileStatus = 'D'
	FileRenamed  FileStatus = 'R'
	FileCopied   FileStatus = 'C'
)

func (s FileStatus) String() string {
	switch s {
	case FileModified:
		return "modified"
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	case FileCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// File is one changed path of a commit. Renames and copies keep jj's
// "{old => new}" notation in Path.
type File struct {
	Status FileStatus
	Path   string
}

func parseFiles(output string) ([]File, error) {
	var files []File
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		if len(line) < 3 || line[1] != ' ' {
			return nil, fmt.Errorf("malformed summary line %q", line)
		}

		status := FileStatus(line[0])
		switch status {
		case FileModified, FileAdded, FileDeleted, FileRenamed, FileCopied:
		default:
			return nil, fmt.Errorf("unknown file status %q", line[0])
		}
		files = append(files, File{Status: status, Path: line[2:]})
	}
	return files, nil
}
