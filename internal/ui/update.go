package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("refresh", msg.err)
			return m, nil
		}
		m.head = msg.head
		m.bookmarks = msg.bookmarks
		m.log = msg.log
		m.files = msg.files
		m.cursor = clamp(m.cursor, len(m.bookmarks))
		m.logOffset = clamp(m.logOffset, len(m.logLines()))
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setError(msg.intent, msg.err)
		} else {
			m.setStatus(msg.intent, msg.output)
		}
		return m, m.refresh()

	case repoChangedMsg:
		return m, tea.Batch(m.refresh(), m.waitForChange())

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		m.tab = tabBookmarks
		return m, nil
	case "2":
		m.tab = tabCommandLog
		return m, nil
	case "3":
		m.tab = tabLog
		return m, nil
	case "4":
		m.tab = tabFiles
		return m, nil
	case "tab":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m, nil
	case "r":
		m.loading = true
		return m, m.refresh()
	case "F":
		allRemotes := m.opts.FetchAllRemotes
		m.setStatus("fetching", "")
		return m, m.action("jj git fetch", func() (string, error) {
			return m.backend.GitFetch(allRemotes)
		})
	case "n":
		if m.head.CommitID.IsZero() {
			return m, nil
		}
		revision := m.head.CommitID.String()
		return m, m.action("jj new", func() (string, error) {
			return "", m.backend.RunNew(revision)
		})
	}

	switch m.tab {
	case tabBookmarks:
		return m.handleBookmarkKey(msg)
	case tabLog:
		return m.handleLogKey(msg)
	}
	return m, nil
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.logOffset < len(m.logLines())-1 {
			m.logOffset++
		}
	case "k", "up":
		if m.logOffset > 0 {
			m.logOffset--
		}
	case "g":
		m.logOffset = 0
	}
	return m, nil
}

func (m Model) handleBookmarkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.bookmarks)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "a":
		m.allRemotes = !m.allRemotes
		m.cursor = 0
		return m, m.refresh()
	}

	bookmark, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "d":
		if !bookmark.IsLocal() {
			m.setStatus("", "only local bookmarks can be deleted")
			return m, nil
		}
		return m, m.action("jj bookmark delete", func() (string, error) {
			return "", m.backend.DeleteBookmark(bookmark.Name)
		})
	case "f":
		return m, m.action("jj bookmark forget", func() (string, error) {
			return "", m.backend.ForgetBookmark(bookmark.Name)
		})
	case "t":
		if bookmark.IsLocal() {
			m.setStatus("", "select a remote bookmark to track or untrack")
			return m, nil
		}
		if bookmark.Tracked {
			return m, m.action("jj bookmark untrack", func() (string, error) {
				return "", m.backend.UntrackBookmark(bookmark)
			})
		}
		return m, m.action("jj bookmark track", func() (string, error) {
			return "", m.backend.TrackBookmark(bookmark)
		})
	}

	return m, nil
}

func (m *Model) setStatus(intent, output string) {
	m.statusErr = false
	switch {
	case intent == "":
		m.status = output
	case output == "":
		m.status = intent
	default:
		m.status = fmt.Sprintf("%s: %s", intent, firstLine(output))
	}
}

func (m *Model) setError(intent string, err error) {
	m.statusErr = true
	m.status = fmt.Sprintf("%s failed: %s", intent, firstLine(err.Error()))
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
