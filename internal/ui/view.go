package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const shortIDLength = 12

const helpLine = "1-4/tab switch  j/k move  r refresh  a remotes  n new  d delete  f forget  t track  F fetch  q quit"

// chrome is the number of lines View draws around the active panel
const chrome = 6

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabCommandLog:
		b.WriteString(m.renderCommandLog())
	case tabLog:
		b.WriteString(m.renderLog())
	case tabFiles:
		b.WriteString(m.renderFiles())
	default:
		b.WriteString(m.renderBookmarks())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(helpLine))
	return b.String()
}

func (m Model) renderHeader() string {
	if m.head.CommitID.IsZero() {
		if m.loading {
			return m.styles.header.Render("loading...")
		}
		return m.styles.header.Render("no working copy")
	}

	description := m.head.Description
	if description == "" {
		description = m.styles.dim.Render("(no description set)")
	}
	return m.styles.header.Render(fmt.Sprintf("@ %s %s %s",
		m.head.ChangeID.Short(shortIDLength),
		m.head.CommitID.Short(shortIDLength),
		description,
	))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs = append(tabs, m.styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBookmarks() string {
	if len(m.bookmarks) == 0 {
		return m.styles.dim.Render("no bookmarks")
	}

	lines := make([]string, 0, len(m.bookmarks))
	for i, bookmark := range m.bookmarks {
		name := bookmark.String()
		if !bookmark.IsLocal() {
			name = m.styles.remote.Render(name)
		}

		var flags []string
		if !bookmark.Present {
			flags = append(flags, "deleted")
		}
		if !bookmark.IsLocal() && bookmark.Tracked {
			flags = append(flags, "tracked")
		}

		line := name
		if len(flags) > 0 {
			line += " " + m.styles.dim.Render("("+strings.Join(flags, ", ")+")")
		}
		if !bookmark.Timestamp.IsZero() {
			line += " " + m.styles.dim.Render(bookmark.Timestamp.Format("2006-01-02 15:04"))
		}

		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCommandLog() string {
	entries := m.backend.History().Snapshot()
	if len(entries) == 0 {
		return m.styles.dim.Render("no commands run yet")
	}

	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		line := fmt.Sprintf("%s %s", entry.Time.Format("15:04:05"), entry.CommandString())
		if !entry.Success {
			line = m.styles.failed.Render(line + " (failed)")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLog() string {
	lines := m.logLines()
	if len(lines) == 0 {
		return m.styles.dim.Render("no log output")
	}

	lines = lines[clamp(m.logOffset, len(lines)):]
	if height := m.height - chrome; m.height > 0 && height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFiles() string {
	if len(m.files) == 0 {
		return m.styles.dim.Render("no files changed")
	}

	lines := make([]string, 0, len(m.files))
	for _, file := range m.files {
		status := fmt.Sprintf("%-8s", file.Status)
		lines = append(lines, m.styles.dim.Render(status)+" "+file.Path)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.errStatus.Render(m.status)
	}
	return m.styles.status.Render(m.status)
}
