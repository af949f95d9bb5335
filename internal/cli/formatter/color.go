package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fluttering/flagctl/internal/domain"
)

// Palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	// Flag values and types.
	styleOn        = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	styleOff       = StyleDim
	styleEnumValue = lipgloss.NewStyle().Foreground(ColorPurple)
	styleBoolBadge = lipgloss.NewStyle().Foreground(ColorBlue)
	styleEnumBadge = lipgloss.NewStyle().Foreground(ColorPurple).Italic(true)
)

// ValuePill renders a flag's current value as "● on", "○ off" or
// "◆ <value>".
func ValuePill(f domain.Flag) string {
	switch {
	case f.IsBoolean() && f.BoolValue:
		return styleOn.Render("● on")
	case f.IsBoolean():
		return styleOff.Render("○ off")
	case f.Type == domain.FlagEnum:
		return styleEnumValue.Render("◆ " + f.EnumValue)
	}
	return StyleDim.Render("?")
}

// TypeBadge labels a flag type in listings.
func TypeBadge(t domain.FlagType) string {
	switch t {
	case domain.FlagBoolean:
		return styleBoolBadge.Render("bool")
	case domain.FlagEnum:
		return styleEnumBadge.Render("enum")
	}
	return StyleDim.Render(string(t))
}
