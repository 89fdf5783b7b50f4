package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/segcut/tui/styles"
)

// Theme returns a huh theme matching the TUI color palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = styles.Title
	t.Focused.Description = styles.SecondaryText
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Red).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Red)
	t.Focused.SelectSelector = lipgloss.NewStyle().SetString("▸ ").Foreground(styles.Cyan)
	t.Focused.Option = styles.PrimaryText
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Focused.NextIndicator = styles.SecondaryText
	t.Focused.PrevIndicator = styles.SecondaryText
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Focused.TextInput.Placeholder = styles.Muted
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Focused.TextInput.Text = styles.PrimaryText
	t.Focused.FocusedButton = button(styles.BrightPurple, styles.LightLavender).Bold(true)
	t.Focused.BlurredButton = button(styles.Purple, styles.Lavender)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = styles.SecondaryText
	t.Blurred.Description = styles.Muted
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.Option = styles.SecondaryText
	t.Blurred.TextInput.Cursor = styles.Muted
	t.Blurred.TextInput.Prompt = styles.Muted
	t.Blurred.TextInput.Text = styles.SecondaryText
	t.Blurred.FocusedButton = button(styles.Purple, styles.Lavender)
	t.Blurred.BlurredButton = button(styles.DeepPurple, styles.Purple)
	t.Blurred.NoteTitle = styles.SecondaryText
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}

func button(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(0, 1)
}
