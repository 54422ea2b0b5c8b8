package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Suggestions:",
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"•",
		"Examples:",
		"Usage:",
	}

	found := false
	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			found = true
			break
		}
	}

	if !found {
		t.Errorf("Error message does not appear to be helpful. Got: %s", output)
	}
}

func AssertMultipleStringsInOutput(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assert.Contains(t, output, exp, "Expected output to contain '%s', got: %s", exp, output)
	}
}

func AssertNoError(t *testing.T, err error, output string) {
	t.Helper()
	assert.NoError(t, err, "Output: %s", output)
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
}

func AssertBookmarkExists(t *testing.T, repo *TestRepo, name string) {
	t.Helper()
	assert.Contains(t, repo.Bookmarks(), name, "Expected bookmark '%s' to exist", name)
}

func AssertBookmarkNotExists(t *testing.T, repo *TestRepo, name string) {
	t.Helper()
	assert.NotContains(t, repo.Bookmarks(), name, "Expected bookmark '%s' not to exist", name)
}

func AssertBookmarkAt(t *testing.T, repo *TestRepo, name, revision string) {
	t.Helper()
	assert.Equal(t, repo.CommitID(revision), repo.CommitID(name),
		"Expected bookmark '%s' to point at %s", name, revision)
}
