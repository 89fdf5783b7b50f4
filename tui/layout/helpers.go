// Package layout holds width helpers shared by the TUI components.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadToWidth pads or truncates a string to exactly the specified width.
// Truncation is ANSI-aware and grapheme-aware, so styled text and wide
// characters in file names are measured correctly.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currentWidth := lipgloss.Width(s)
	if currentWidth > width {
		s = ansi.Truncate(s, width, "")
		currentWidth = lipgloss.Width(s)
	}
	if currentWidth < width {
		return s + strings.Repeat(" ", width-currentWidth)
	}
	return s
}

// TruncateMiddle shortens s to width by replacing its middle with "...",
// keeping the end of long paths visible.
func TruncateMiddle(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	keep := width - 3
	head := keep / 2
	tail := keep - head
	return ansi.Truncate(s, head, "") + "..." + ansi.TruncateLeft(s, lipgloss.Width(s)-tail, "")
}
