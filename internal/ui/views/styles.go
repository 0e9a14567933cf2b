package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("63")
	ColorError   = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")

	ResponseLabelStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	ErrorStyle         = lipgloss.NewStyle().Foreground(ColorError)
	ToolHeaderStyle    = lipgloss.NewStyle().Bold(true)
	ToolListStyle      = lipgloss.NewStyle().Foreground(ColorMuted).PaddingLeft(2)
)
