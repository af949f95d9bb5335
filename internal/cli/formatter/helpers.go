package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const shortIDLen = 8

// Header upper-cases text and underlines it to its display width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return StyleHeader.Render(title) + "\n" + StyleDim.Render(rule)
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }

// Panel draws a rounded box around lines with an optional title row.
func Panel(title string, lines []string) string {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = StyleHeader.Render(strings.ToUpper(title)) + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Render(body)
}

// ShortID truncates generated ids for display. Seeded ids such as
// "flag-1" are short enough to show whole.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// FlagTime formats a flag timestamp relative to now: "just now" under a
// minute, "N min ago" under an hour, "N hr ago" under a day, and the
// absolute date otherwise. Future timestamps count as "just now".
func FlagTime(t, now time.Time) string {
	switch d := now.Sub(t); {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(d/time.Hour))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Plural formats a count with a naive English plural.
func Plural(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}
