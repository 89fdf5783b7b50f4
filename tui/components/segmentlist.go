package components

import (
	"fmt"
	"strings"

	"github.com/user/segcut/pkg/timeutil"
	"github.com/user/segcut/segment"
	"github.com/user/segcut/tui/layout"
	"github.com/user/segcut/tui/styles"
)

const (
	numberCol = 12
	timeCol   = 12
)

// SegmentList renders the session's segments with their start, end, and
// computed length. Start and end are shown exactly as typed.
func SegmentList(segments []segment.Segment, duration segment.MediaDuration, width int) string {
	if len(segments) == 0 {
		return styles.Muted.Render("No segments yet. Add one to get started.")
	}

	header := layout.PadToWidth("", numberCol) +
		layout.PadToWidth("Start", timeCol) +
		layout.PadToWidth("End", timeCol) +
		"Length"
	lines := []string{styles.SecondaryText.Render(header)}

	for i, seg := range segments {
		row := styles.Title.Render(layout.PadToWidth(fmt.Sprintf("Segment %d", i+1), numberCol)) +
			styles.PrimaryText.Render(layout.PadToWidth(seg.Start, timeCol)) +
			styles.PrimaryText.Render(layout.PadToWidth(seg.End, timeCol)) +
			styles.Path.Render(timeutil.FormatTimeDisplay(seg.Length()))
		if duration.Known && seg.EndSeconds() > duration.Seconds {
			row += "  " + styles.Error.Render("past end")
		}
		lines = append(lines, layout.PadToWidth(row, width))
	}
	return strings.Join(lines, "\n")
}
