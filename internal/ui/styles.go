package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	selected  lipgloss.Style
	dim       lipgloss.Style
	remote    lipgloss.Style
	failed    lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
}

func newStyles(highlight string) styles {
	return styles{
		header: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		tab:       lipgloss.NewStyle().Padding(0, 1),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color(highlight)),
		selected:  lipgloss.NewStyle().Background(lipgloss.Color(highlight)),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		remote:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
