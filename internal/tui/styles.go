package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#6366F1")).
			Bold(true).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Foreground(lipgloss.Color("#6366F1")).Bold(true).Underline(true)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ratingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	pageStyle        = lipgloss.NewStyle().Padding(0, 1)
	currentPageStyle = pageStyle.Background(lipgloss.Color("#6366F1")).Foreground(lipgloss.Color("#FFFFFF"))

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366F1")).Bold(true)
	paneStyle    = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#6366F1")).
			PaddingLeft(1)
)
