// Package output provides styled terminal rendering for workpulse run
// summaries and session listings.
package output

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for productive categories and successful runs.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for distracting categories and failed users.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for middling scores.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and rules.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles reused across commands.
var (
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleGood   = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleBad    = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold   = lipgloss.NewStyle().Bold(true)
)

var noColor bool

func init() {
	// Piped output gets plain text without requiring --no-color.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		SetNoColor(true)
	}
}

// SetNoColor disables or enables color output globally. When disabled, all
// package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleGood = plain
		StyleBad = plain
		StyleWarn = plain
		StyleMuted = plain
		StyleBold = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// Score renders a 0-100 score in a color reflecting its band.
func Score(v int) string {
	s := strconv.Itoa(v)
	switch {
	case v >= 70:
		return StyleGood.Render(s)
	case v >= 40:
		return StyleWarn.Render(s)
	default:
		return StyleBad.Render(s)
	}
}
