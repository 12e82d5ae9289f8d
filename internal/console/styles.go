package console

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("39")
	muted  = lipgloss.Color("244")
	danger = lipgloss.Color("203")

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle        = lipgloss.NewStyle().Foreground(muted)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	errorStyle        = lipgloss.NewStyle().Foreground(danger)
	infoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	faintStyle        = lipgloss.NewStyle().Foreground(muted)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(accent)

	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(accent)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent).
			Padding(0, 1)
	drawerClosingStyle = drawerStyle.
				BorderForeground(muted).
				Foreground(muted)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1, 2)
)
