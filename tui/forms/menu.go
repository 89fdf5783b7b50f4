package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/user/segcut/segment"
)

// Action is a choice in the session menu.
type Action string

const (
	ActionAdd     Action = "add"
	ActionEdit    Action = "edit"
	ActionRemove  Action = "remove"
	ActionPreview Action = "preview"
	ActionCut     Action = "cut"
	ActionQuit    Action = "quit"
)

// ActionOptions returns the menu entries available for a session holding
// segmentCount segments. canPreview adds the mpv preview entry.
func ActionOptions(segmentCount int, canPreview bool) []huh.Option[Action] {
	opts := []huh.Option[Action]{huh.NewOption("Add segment", ActionAdd)}
	if segmentCount > 0 {
		opts = append(opts,
			huh.NewOption("Edit segment", ActionEdit),
			huh.NewOption("Remove segment", ActionRemove),
		)
		if canPreview {
			opts = append(opts, huh.NewOption("Preview segment", ActionPreview))
		}
		opts = append(opts, huh.NewOption("Cut video", ActionCut))
	}
	return append(opts, huh.NewOption("Quit", ActionQuit))
}

// NewActionForm creates the session menu.
func NewActionForm(options []huh.Option[Action], action *Action) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("What next?").
				Options(options...).
				Value(action),
		),
	).WithTheme(Theme())
}

// NewSegmentPickerForm lets the user choose one segment by ID.
func NewSegmentPickerForm(title string, segments []segment.Segment, id *string) *huh.Form {
	opts := make([]huh.Option[string], len(segments))
	for i, seg := range segments {
		label := fmt.Sprintf("Segment %d  %s - %s", i+1, seg.Start, seg.End)
		opts[i] = huh.NewOption(label, seg.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(id),
		),
	).WithTheme(Theme())
}
