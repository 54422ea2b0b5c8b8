package jj

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyID is returned when jj printed nothing where an id was expected.
	ErrEmptyID = errors.New("empty identifier")
	// ErrInvalidID is returned when an id contains characters outside its alphabet.
	ErrInvalidID = errors.New("invalid identifier")
)

// CommitID identifies a single commit. The zero value is not a valid id;
// values only come from ParseCommitID on jj output.
type CommitID struct {
	value string
}

// ParseCommitID validates a commit id as printed by jj (lowercase hex)
func ParseCommitID(s string) (CommitID, error) {
	if err := validateID(s, isHexDigit); err != nil {
		return CommitID{}, fmt.Errorf("commit id %q: %w", s, err)
	}
	return CommitID{value: s}, nil
}

func (id CommitID) String() string {
	return id.value
}

// IsZero reports whether id was never set
func (id CommitID) IsZero() bool {
	return id.value == ""
}

// Compare orders ids by plain string comparison
func (id CommitID) Compare(other CommitID) int {
	return strings.Compare(id.value, other.value)
}

// Short returns the first n characters of the id
func (id CommitID) Short(n int) string {
	if n <= 0 || n >= len(id.value) {
		return id.value
	}
	return id.value[:n]
}

// ChangeID identifies a change across rewrites. jj prints it in
// "reverse hex" (the letters k through z).
type ChangeID struct {
	value string
}

// ParseChangeID validates a change id as printed by jj
func ParseChangeID(s string) (ChangeID, error) {
	if err := validateID(s, isReverseHexDigit); err != nil {
		return ChangeID{}, fmt.Errorf("change id %q: %w", s, err)
	}
	return ChangeID{value: s}, nil
}

func (id ChangeID) String() string {
	return id.value
}

// Short returns the first n characters of the id
func (id ChangeID) Short(n int) string {
	if n <= 0 || n >= len(id.value) {
		return id.value
	}
	return id.value[:n]
}

// IsZero reports whether id was never set
func (id ChangeID) IsZero() bool {
	return id.value == ""
}

func validateID(s string, valid func(rune) bool) error {
	if s == "" {
		return ErrEmptyID
	}
	for _, r := range s {
		if !valid(r) {
			return ErrInvalidID
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

func isReverseHexDigit(r rune) bool {
	return r >= 'k' && r <= 'z'
}
