package jj

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseCommitID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "full id", input: testCommitID},
		{name: "short id", input: "0123abcd"},
		{name: "empty", input: "", wantErr: ErrEmptyID},
		{name: "uppercase", input: "ABCDEF", wantErr: ErrInvalidID},
		{name: "trailing newline", input: "abcd\n", wantErr: ErrInvalidID},
		{name: "change id letters", input: "zzzz", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseCommitID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestCommitID_Ordering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[0-9a-f]{1,40}`).Draw(t, "a")
		b := rapid.StringMatching(`[0-9a-f]{1,40}`).Draw(t, "b")

		idA, err := ParseCommitID(a)
		if err != nil {
			t.Fatal(err)
		}
		idB, err := ParseCommitID(b)
		if err != nil {
			t.Fatal(err)
		}

		if (idA == idB) != (a == b) {
			t.Fatalf("equality mismatch for %q and %q", a, b)
		}
		if idA.Compare(idB) != -idB.Compare(idA) {
			t.Fatalf("compare not antisymmetric for %q and %q", a, b)
		}
	})
}

func TestCommitID_Short(t *testing.T) {
	id := mustCommitID(t, testCommitID)

	assert.Equal(t, "01234567", id.Short(8))
	assert.Equal(t, testCommitID, id.Short(0))
	assert.Equal(t, testCommitID, id.Short(100))
}

func TestParseChangeID(t *testing.T) {
	id, err := ParseChangeID(testChangeID)
	require.NoError(t, err)
	assert.Equal(t, testChangeID, id.String())

	_, err = ParseChangeID("0123")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = ParseChangeID("")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestParseHead(t *testing.T) {
	t.Run("should keep tabs inside the description", func(t *testing.T) {
		head, err := parseHead(testChangeID + "\t" + testCommitID + "\tfix:\tthing")

		require.NoError(t, err)
		assert.Equal(t, "fix:\tthing", head.Description)
	})

	t.Run("should accept an empty description", func(t *testing.T) {
		head, err := parseHead(testChangeID + "\t" + testCommitID + "\t")

		require.NoError(t, err)
		assert.Empty(t, head.Description)
	})

	t.Run("should reject swapped ids", func(t *testing.T) {
		_, err := parseHead(testCommitID + "\t" + testChangeID + "\t")

		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestBookmark_String(t *testing.T) {
	assert.Equal(t, "main", Bookmark{Name: "main"}.String())
	assert.Equal(t, "main@origin", Bookmark{Name: "main", Remote: "origin"}.String())
	assert.True(t, Bookmark{Name: "main"}.Same(Bookmark{Name: "main", Remote: "origin"}))
	assert.False(t, Bookmark{Name: "main"}.Same(Bookmark{Name: "dev"}))
}

func TestParseBookmarks(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		allRemotes bool
		expected   []Bookmark
		wantErr    bool
	}{
		{
			name:   "empty output",
			output: "",
		},
		{
			name:   "local bookmark",
			output: "feature\t\t1\t0\t1700000000\n",
			expected: []Bookmark{
				{Name: "feature", Present: true, Timestamp: time.Unix(1700000000, 0)},
			},
		},
		{
			name:       "deleted remote bookmark",
			output:     "feature\t\t0\t0\t0\nfeature\torigin\t1\t1\t1700000000\n",
			allRemotes: true,
			expected: []Bookmark{
				{Name: "feature", Present: false},
				{Name: "feature", Remote: "origin", Present: true, Tracked: true, Timestamp: time.Unix(1700000000, 0)},
			},
		},
		{
			name:    "missing field",
			output:  "feature\t\t1\t0\n",
			wantErr: true,
		},
		{
			name:    "bad flag",
			output:  "feature\t\tyes\t0\t0\n",
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			output:  "feature\t\t1\t0\tsoon\n",
			wantErr: true,
		},
		{
			name:    "empty name",
			output:  "\t\t1\t0\t0\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookmarks, err := parseBookmarks(tt.output, tt.allRemotes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bookmarks)
		})
	}
}

func TestParseFiles(t *testing.T) {
	files, err := parseFiles("M a.go\nD b.go\nR {c.go => d.go}\nC e.go\n")
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, FileDeleted, files[1].Status)
	assert.Equal(t, "deleted", files[1].Status.String())
	assert.Equal(t, "{c.go => d.go}", files[2].Path)

	_, err = parseFiles("X weird")
	assert.Error(t, err)

	_, err = parseFiles("M")
	assert.Error(t, err)
}
