package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/user/segcut/pkg/timeutil"
	"github.com/user/segcut/segment"
)

// SegmentFormResult holds the raw start and end text of a segment.
type SegmentFormResult struct {
	Start string
	End   string
}

// Length returns the live length shown while typing, never negative.
func (r *SegmentFormResult) Length() float64 {
	return max(0, timeutil.ParseTime(r.End)-timeutil.ParseTime(r.Start))
}

// lengthDescription is the text under the End field.
func lengthDescription(r *SegmentFormResult, duration segment.MediaDuration) string {
	desc := "Length " + timeutil.FormatTimeDisplay(r.Length())
	if duration.Known && timeutil.ParseTime(r.End) > duration.Seconds {
		desc += fmt.Sprintf(" (past the end of the video at %s)", duration)
	}
	return desc
}

// NewSegmentForm creates a form for the start and end of segment number n.
// Any text is accepted; it is parsed leniently and normalized when the form
// is submitted.
func NewSegmentForm(n int, duration segment.MediaDuration, result *SegmentFormResult) *huh.Form {
	placeholder := "0:00:10"
	if duration.Known {
		placeholder = timeutil.FormatTimeInput(duration.Seconds)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(fmt.Sprintf("Segment %d", n)),

			huh.NewInput().
				Title("Start Time").
				Description("H:MM:SS, MM:SS or seconds").
				Placeholder("0:00:00").
				Value(&result.Start),

			huh.NewInput().
				Title("End Time").
				DescriptionFunc(func() string { return lengthDescription(result, duration) }, result).
				Placeholder(placeholder).
				Value(&result.End),
		),
	).WithTheme(Theme())
}
