package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, keys.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" and "enabled" statuses.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and the "kept" status.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by renderers.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
	Header  lipgloss.Style
	Warning lipgloss.Style
}

// GetStyles returns the renderer styles.
func GetStyles() Styles {
	return Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   StyleDim,
		Noun:    StyleNoun,
		Header:  lipgloss.NewStyle().Bold(true).Foreground(ColorBlue),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	}
}

// File and target status values.
const (
	StatusCreated  = "created"
	StatusKept     = "kept"
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
	StatusFailed   = "failed"
)

// StatusStyle returns the style for a status word. Unknown statuses are
// unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusEnabled:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusKept:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusDisabled:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned.
const minPathColumnWidth = 40

// FormatPathLine renders a path with a right-aligned, color-coded status.
func FormatPathLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
