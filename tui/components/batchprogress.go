package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/segcut/tui/layout"
	"github.com/user/segcut/tui/styles"
)

// BatchProgressState holds the state for the batch progress display.
type BatchProgressState struct {
	Total     int
	Completed int
	Failed    int
	// Current is the 1-based number of the segment being cut, 0 when idle.
	Current int
	// CurrentFile is the output path of the segment being cut.
	CurrentFile string
	Done        bool
	Cancelling  bool
}

// BatchProgress renders a bordered box with a progress bar, a segment
// counter, and the segment in flight. spinner is the current spinner frame.
func BatchProgress(state BatchProgressState, spinner string, width int) string {
	if width < 10 {
		return ""
	}

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var pct int
	if state.Total > 0 {
		pct = state.Completed * 100 / state.Total
	}

	// Leave room for the " XXX%" label.
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := 0
	if state.Total > 0 {
		filled = min(barWidth*state.Completed/state.Total, barWidth)
	}

	bar := lipgloss.NewStyle().Foreground(styles.Green).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Amber).Render(strings.Repeat("░", barWidth-filled))
	lines := []string{" " + bar + styles.PrimaryText.Render(fmt.Sprintf(" %3d%%", pct))}

	counter := styles.PrimaryText.Render(fmt.Sprintf(" %d/%d segments", state.Completed, state.Total))
	if state.Failed > 0 {
		counter += "  " + styles.Error.Render(fmt.Sprintf("%d failed", state.Failed))
	}
	lines = append(lines, counter)

	switch {
	case state.Done && state.Failed == 0 && state.Completed == state.Total:
		lines = append(lines, " "+styles.Success.Render("All segments written"))
	case state.Done:
		lines = append(lines, " "+styles.Error.Render("Stopped"))
	case state.Current > 0:
		status := fmt.Sprintf("Processing segment %d of %d...", state.Current, state.Total)
		if state.Cancelling {
			status = "Stopping after the current segment..."
		}
		lines = append(lines, " "+spinner+" "+styles.Pending.Render(status))
		if state.CurrentFile != "" {
			lines = append(lines, " "+styles.Path.Render(layout.TruncateMiddle(state.CurrentFile, innerW-1)))
		}
	}

	return RenderInfoBox("Cutting", lines, width)
}
