package command

// Program is the wrapped tool
const Program = "jj"

// Flags of the jj CLI used as building blocks
const (
	FlagRevision        = "-r"
	FlagMessage         = "-m"
	FlagTemplate        = "-T"
	FlagInto            = "--into"
	FlagUseDestMessage  = "-u"
	FlagIgnoreImmutable = "--ignore-immutable"
	FlagAllowBackwards  = "--allow-backwards"
	FlagAll             = "--all"
	FlagAllowNew        = "--allow-new"
	FlagAllRemotes      = "--all-remotes"
	FlagNoGraph         = "--no-graph"
	FlagLimit           = "--limit"
	FlagSummary         = "--summary"
)

func jj(args ...string) Command {
	return Command{
		Name: Program,
		Args: args,
	}
}

// JjNew builds a jj new command creating a change after revision
func JjNew(revision string) Command {
	return jj("new", revision)
}

// JjEdit builds a jj edit command
func JjEdit(revision string, ignoreImmutable bool) Command {
	args := []string{"edit", revision}
	if ignoreImmutable {
		args = append(args, FlagIgnoreImmutable)
	}
	return jj(args...)
}

// JjAbandon builds a jj abandon command
func JjAbandon(revision string) Command {
	return jj("abandon", revision)
}

// JjDescribe builds a jj describe command setting the full message
func JjDescribe(revision, message string) Command {
	return jj("describe", revision, FlagMessage, message)
}

// JjSquash builds a jj squash command moving the working copy into revision,
// keeping the destination's message
func JjSquash(revision string, ignoreImmutable bool) Command {
	args := []string{"squash", FlagUseDestMessage, FlagInto, revision}
	if ignoreImmutable {
		args = append(args, FlagIgnoreImmutable)
	}
	return jj(args...)
}

// JjBookmarkCreate builds a jj bookmark create command. An empty revision
// leaves the target to jj (the working-copy change).
func JjBookmarkCreate(name, revision string) Command {
	args := []string{"bookmark", "create", name}
	if revision != "" {
		args = append(args, FlagRevision, revision)
	}
	return jj(args...)
}

// JjBookmarkSet builds a jj bookmark set command.
// Moving backwards is always allowed.
func JjBookmarkSet(name, revision string) Command {
	return jj("bookmark", "set", name, FlagRevision, revision, FlagAllowBackwards)
}

// JjBookmarkRename builds a jj bookmark rename command
func JjBookmarkRename(oldName, newName string) Command {
	return jj("bookmark", "rename", oldName, newName)
}

// JjBookmarkDelete builds a jj bookmark delete command
func JjBookmarkDelete(name string) Command {
	return jj("bookmark", "delete", name)
}

// JjBookmarkForget builds a jj bookmark forget command
func JjBookmarkForget(name string) Command {
	return jj("bookmark", "forget", name)
}

// JjBookmarkTrack builds a jj bookmark track command for a name@remote token
func JjBookmarkTrack(ref string) Command {
	return jj("bookmark", "track", ref)
}

// JjBookmarkUntrack builds a jj bookmark untrack command for a name@remote token
func JjBookmarkUntrack(ref string) Command {
	return jj("bookmark", "untrack", ref)
}

// JjBookmarkList builds a templated jj bookmark list command
func JjBookmarkList(allRemotes bool, template string) Command {
	args := []string{"bookmark", "list"}
	if allRemotes {
		args = append(args, FlagAllRemotes)
	}
	args = append(args, FlagTemplate, template)
	return jj(args...)
}

// GitPushOptions represents options for jj git push
type GitPushOptions struct {
	AllBookmarks bool
	AllowNew     bool
	Revision     string // ignored when AllBookmarks is set
}

// JjGitPush builds a jj git push command. Push progress is reported on
// stderr, so the output streams are combined.
func JjGitPush(opts GitPushOptions) Command {
	args := []string{"git", "push"}
	if opts.AllowNew {
		args = append(args, FlagAllowNew)
	}
	if opts.AllBookmarks {
		args = append(args, FlagAll)
	} else {
		args = append(args, FlagRevision, opts.Revision)
	}

	cmd := jj(args...)
	cmd.CombineOutput = true
	return cmd
}

// JjGitFetch builds a jj git fetch command
func JjGitFetch(allRemotes bool) Command {
	args := []string{"git", "fetch"}
	if allRemotes {
		args = append(args, FlagAllRemotes)
	}

	cmd := jj(args...)
	cmd.CombineOutput = true
	return cmd
}

// JjLogTemplate builds a single-revision log query rendered with template
func JjLogTemplate(revision, template string) Command {
	return jj("log", FlagLimit, "1", FlagNoGraph, FlagTemplate, template, FlagRevision, revision)
}

// JjLog builds a jj log command for a revset. An empty revset uses jj's default.
func JjLog(revset string) Command {
	args := []string{"log"}
	if revset != "" {
		args = append(args, FlagRevision, revset)
	}
	return jj(args...)
}

// JjDiffSummary builds a jj diff --summary command for one revision
func JjDiffSummary(revision string) Command {
	return jj("diff", FlagSummary, FlagRevision, revision)
}
