package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/segcut/tui/styles"
)

// StatusBar renders a full-width bar with left and right aligned text.
func StatusBar(left, right string, width int) string {
	left = " " + left
	right = right + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}
