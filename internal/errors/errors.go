package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satococoa/jjt/internal/command"
)

// Common error messages with helpful context and suggestions

// Repository Errors
func NotInJjRepository(path string) error {
	msg := fmt.Sprintf(`not in a jj repository: %s

Solutions:
  • Run 'jj git init' to create a new repository
  • Run 'jj git init --colocate' inside an existing git repository
  • Use '-R <path>' to point jjt at a repository`, path)
	return errors.New(msg)
}

// JjBinaryNotFound reports that binary could not be started. The returned
// error unwraps to originalError.
func JjBinaryNotFound(binary string, originalError error) error {
	msg := fmt.Sprintf(`failed to start '%s'

Solutions:
  • Install jj: https://jj-vcs.github.io/jj/latest/install-and-setup/
  • Make sure '%s' is on your PATH
  • Set 'jj.binary' in .jjt.yml to the full path of the executable`, binary, binary)

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return &causedError{msg: msg, cause: originalError}
}

// JjCommandFailed reports a command jj rejected. stderr is shown as jj wrote
// it. A non-nil cause stays reachable through errors.As.
func JjCommandFailed(intent, stderr string, cause error) error {
	details := strings.TrimRight(stderr, "\n")
	if strings.TrimSpace(details) == "" {
		details = "no additional details available"
	}

	msg := fmt.Sprintf("failed executing %s\n\n%s", intent, details)

	suggestions := []string{}
	switch {
	case strings.Contains(stderr, "is immutable"):
		suggestions = append(suggestions,
			"Pass '--ignore-immutable' to rewrite it anyway",
			"Check 'revset-aliases.\"immutable_heads()\"' in your jj config")
	case strings.Contains(stderr, "Refusing to create new remote bookmark"):
		suggestions = append(suggestions,
			"Pass '--allow-new' to create the bookmark on the remote")
	case strings.Contains(stderr, "No such bookmark"), strings.Contains(stderr, "No matching bookmarks"):
		suggestions = append(suggestions,
			"Run 'jjt bookmark list --all-remotes' to see available bookmarks")
	case strings.Contains(stderr, "already exists"):
		suggestions = append(suggestions,
			"Choose a different name",
			"Use 'jjt bookmark set' to move the existing bookmark")
	case strings.Contains(stderr, "doesn't exist"), strings.Contains(stderr, "Revision") && strings.Contains(stderr, "not found"):
		suggestions = append(suggestions,
			"Check the revision spelling",
			"Run 'jjt log' to see available revisions")
	}

	if len(suggestions) > 0 {
		msg += "\n\nSuggestions:"
		for _, suggestion := range suggestions {
			msg += fmt.Sprintf("\n  • %s", suggestion)
		}
	}

	if cause == nil {
		return errors.New(msg)
	}
	return &causedError{msg: msg, cause: cause}
}

func OutputParseFailed(intent, output string, parseError error) error {
	msg := fmt.Sprintf(`unexpected output from %s

Output: %q

This usually means the installed jj version is not supported.
Tip: Run 'jj version' and report it together with this message`, intent, output)

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return &causedError{msg: msg, cause: parseError}
}

// FromCommandError turns a failure from the command layer into a user-facing
// error for intent. The *command.CommandError stays in the chain so callers
// can still tell the failure kinds apart. Errors that are not command errors
// are wrapped unchanged.
func FromCommandError(intent string, err error) error {
	var cmdErr *command.CommandError
	if !errors.As(err, &cmdErr) {
		return fmt.Errorf("failed executing %s: %w", intent, err)
	}

	switch cmdErr.Kind {
	case command.ErrLaunch:
		binary := cmdErr.Program
		if binary == "" {
			binary = command.Program
		}
		return &causedError{msg: JjBinaryNotFound(binary, cmdErr.Err).Error(), cause: err}
	case command.ErrParse:
		return &causedError{msg: OutputParseFailed(intent, cmdErr.Output, cmdErr.Err).Error(), cause: err}
	default:
		return JjCommandFailed(intent, cmdErr.Stderr, err)
	}
}

// causedError carries a user-facing message and the error it was built from
type causedError struct {
	msg   string
	cause error
}

func (e *causedError) Error() string {
	return e.msg
}

func (e *causedError) Unwrap() error {
	return e.cause
}

// Validation Errors
func BookmarkNameRequired(commandExample string) error {
	msg := fmt.Sprintf(`bookmark name is required

Usage: %s

Examples:
  • jjt bookmark create feature/auth
  • jjt bookmark set main -r @-
  • jjt bookmark track main@origin`, commandExample)
	return errors.New(msg)
}

func RevisionRequired(commandExample string) error {
	msg := fmt.Sprintf(`revision is required

Usage: %s

Examples:
  • %s @-
  • %s main

Tip: Run 'jjt log' to see available revisions`, commandExample, firstWords(commandExample, 2), firstWords(commandExample, 2))
	return errors.New(msg)
}

func RemoteBookmarkRequired(name string) error {
	msg := fmt.Sprintf(`'%s' does not name a remote bookmark

Usage: jjt bookmark track <name>@<remote>

Tip: Run 'jjt bookmark list --all-remotes' to see remote bookmarks`, name)
	return errors.New(msg)
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Validate YAML at https://yamllint.com/`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += `

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la .jjt.yml'`
	} else if strings.Contains(parseErrorStr, "invalid configuration") {
		msg += `

Cause: Configuration values are out of range
Solution: Check the fields named below against the documentation`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

func ConfigAlreadyExists(configPath string) error {
	msg := fmt.Sprintf(`configuration file already exists: %s

Options:
  • Edit the existing file manually
  • Delete it and run 'jjt init' again`, configPath)
	return errors.New(msg)
}

func ConfigWriteFailed(configPath string, originalError error) error {
	msg := fmt.Sprintf("failed to write configuration to '%s'", configPath)
	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return &causedError{msg: msg, cause: originalError}
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
