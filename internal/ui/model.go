// Package ui is the interactive front-end over the jj Commander: bookmarks,
// the command log, jj's log graph and the files changed by the working copy.
// It holds only UI state; every value shown comes from a fresh Commander
// query.
package ui

import (
	"cmp"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/satococoa/jjt/internal/command"
	"github.com/satococoa/jjt/internal/jj"
)

// Backend is the part of *jj.Commander the UI uses
type Backend interface {
	GetCurrentHead() (jj.Head, error)
	GetBookmarksList(allRemotes bool) ([]jj.Bookmark, error)
	GetLog(revset string) (string, error)
	GetFilesList(commitID jj.CommitID) ([]jj.File, error)
	RunNew(revision string) error
	DeleteBookmark(name string) error
	ForgetBookmark(name string) error
	TrackBookmark(bookmark jj.Bookmark) error
	UntrackBookmark(bookmark jj.Bookmark) error
	GitFetch(allRemotes bool) (string, error)
	History() *command.History
}

// Options configures the model
type Options struct {
	// Changes delivers a signal whenever the repository changed on disk.
	Changes         <-chan struct{}
	RefreshInterval time.Duration
	HighlightColor  string
	FetchAllRemotes bool
}

type tab int

const (
	tabBookmarks tab = iota
	tabCommandLog
	tabLog
	tabFiles
)

var tabNames = []string{"Bookmarks", "Command Log", "Log", "Files"}

// Model is the bubbletea model for the jjt UI
type Model struct {
	backend Backend
	opts    Options
	styles  styles

	tab        tab
	head       jj.Head
	bookmarks  []jj.Bookmark
	log        string
	files      []jj.File
	cursor     int
	logOffset  int
	allRemotes bool
	loading    bool

	status    string
	statusErr bool

	width  int
	height int
}

// New creates the UI model
func New(backend Backend, opts Options) Model {
	return Model{
		backend: backend,
		opts:    opts,
		styles:  newStyles(opts.HighlightColor),
		loading: true,
	}
}

// Run starts the UI and blocks until the user quits
func Run(backend Backend, opts Options) error {
	program := tea.NewProgram(New(backend, opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type refreshedMsg struct {
	head      jj.Head
	bookmarks []jj.Bookmark
	log       string
	files     []jj.File
	err       error
}

type actionDoneMsg struct {
	intent string
	output string
	err    error
}

type repoChangedMsg struct{}

type tickMsg time.Time

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.waitForChange(), m.tick())
}

// refresh re-reads every panel off the UI goroutine. These are read-only
// queries and may overlap with a running mutation.
func (m Model) refresh() tea.Cmd {
	backend := m.backend
	allRemotes := m.allRemotes
	return func() tea.Msg {
		head, err := backend.GetCurrentHead()
		if err != nil {
			return refreshedMsg{err: err}
		}
		bookmarks, err := backend.GetBookmarksList(allRemotes)
		if err != nil {
			return refreshedMsg{err: err}
		}
		log, err := backend.GetLog("")
		if err != nil {
			return refreshedMsg{err: err}
		}
		files, err := backend.GetFilesList(head.CommitID)
		if err != nil {
			return refreshedMsg{err: err}
		}
		sortBookmarks(bookmarks)
		return refreshedMsg{head: head, bookmarks: bookmarks, log: log, files: files}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.opts.Changes == nil {
		return nil
	}
	changes := m.opts.Changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return repoChangedMsg{}
	}
}

func (m Model) tick() tea.Cmd {
	if m.opts.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) action(intent string, run func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		output, err := run()
		return actionDoneMsg{intent: intent, output: output, err: err}
	}
}

// sortBookmarks orders newest first, then by name and local before remote
func sortBookmarks(bookmarks []jj.Bookmark) {
	slices.SortStableFunc(bookmarks, func(a, b jj.Bookmark) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Remote, b.Remote)
	})
}

func (m Model) logLines() []string {
	if m.log == "" {
		return nil
	}
	return strings.Split(m.log, "\n")
}

func (m Model) selected() (jj.Bookmark, bool) {
	if m.cursor < 0 || m.cursor >= len(m.bookmarks) {
		return jj.Bookmark{}, false
	}
	return m.bookmarks[m.cursor], true
}
