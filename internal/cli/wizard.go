package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fluttering/flagctl/internal/cli/formatter"
)

// promptTheme colors huh prompts with the formatter palette: the accent for
// focused titles and buttons, dim for everything else.
func promptTheme() *huh.Theme {
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t := huh.ThemeBase()
	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = dim
	t.Focused.FocusedButton = fg.Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = dim.Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim

	t.Blurred.Title = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim
	return t
}

func runForm(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(promptTheme()).
		WithShowHelp(false).
		Run()
}

// confirmForm asks before a destructive enum type change.
func confirmForm(title, description string) (bool, error) {
	var ok bool
	err := runForm(huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok))
	return ok, err
}

// inputForm reads one line, such as a user name or a value list.
func inputForm(title, description string) (string, error) {
	var value string
	err := runForm(huh.NewInput().
		Title(title).
		Description(description).
		Value(&value))
	return value, err
}
