package command

// Command represents a jj invocation to be executed
type Command struct {
	Name    string   // Program name (e.g., "jj")
	Args    []string // Command arguments, recorded verbatim in the history
	WorkDir string   // Optional working directory (the repository root)
	Env     []string // Extra environment entries appended to os.Environ()

	// CombineOutput returns stderr together with stdout on success.
	// jj reports push/fetch progress on stderr even when nothing failed.
	CombineOutput bool
}

// Output holds what a finished subprocess wrote and how it exited
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ShellExecutor interface abstracts the actual process spawning.
// Implementations return a *CommandError for launch failures and non-zero exits.
type ShellExecutor interface {
	Execute(cmd Command) (Output, error)
}

// Executor runs a command, records it in the history and returns its text result
type Executor interface {
	Execute(cmd Command) (string, error)
}
