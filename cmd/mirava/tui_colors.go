package main

import "github.com/charmbracelet/lipgloss"

// tc centralizes the styles shared by the listing and the name prompt.
var tc = struct {
	Title   lipgloss.Style // course heading, bold cyan
	Dim     lipgloss.Style // durations and separators, gray
	Faint   lipgloss.Style // help text, darker gray
	Cyan    lipgloss.Style
	Green   lipgloss.Style // fully watched
	Yellow  lipgloss.Style // partially watched
	Red     lipgloss.Style
	Unknown lipgloss.Style // unknown duration
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Faint:   lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	Cyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	Green:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Yellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Red:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Unknown: lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Italic(true),
}
