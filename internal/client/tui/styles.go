package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	boxUnchecked = "☐"
	boxChecked   = "☑"
)
