package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module paths, file names.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "ok" step status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "staged" step status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "skipped" step status.
	colorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" step status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module paths, file names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (building, staging, compiling).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Step status constants.
const (
	StatusOK      = "ok"
	StatusStaged  = "staged"
	StatusIndexed = "indexed"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// StatusStyle returns the lipgloss style for a step status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusStaged:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusIndexed:
		return lipgloss.NewStyle().Faint(true)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width of the path column before the
// status suffix, so status words align.
const minPathColumnWidth = 48

// FormatFileLine renders a file path with a right-aligned, color-coded status.
//
// Format: f:<path>  <status>
func FormatFileLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("f:")
	styledPath := StyleNoun.Render(path)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
