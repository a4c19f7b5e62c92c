// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (forklift orange).
	PrimaryColor = lipgloss.Color("#FFA94D")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// CheckDigitStyle renders the resolved check digit, big and loud so it
	// can be read from the forklift seat.
	CheckDigitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SuccessColor)
)

// FormatTitle formats a section title.
func FormatTitle(text string) string {
	return TitleStyle.Render(text)
}

// FormatSuccess formats a success message.
func FormatSuccess(text string) string {
	return SuccessStyle.Render(text)
}

// FormatWarning formats a warning message.
func FormatWarning(text string) string {
	return WarningStyle.Render(text)
}

// FormatError formats an error message.
func FormatError(text string) string {
	return ErrorStyle.Render(text)
}

// FormatSubtle formats de-emphasized text.
func FormatSubtle(text string) string {
	return SubtleStyle.Render(text)
}
