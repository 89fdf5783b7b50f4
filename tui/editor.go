// Package tui provides the interactive segment editor and the batch progress view.
package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/user/segcut/segment"
	"github.com/user/segcut/tui/components"
	"github.com/user/segcut/tui/forms"
	"github.com/user/segcut/tui/styles"
)

// Prompter asks the user for decisions. The default implementation runs huh forms.
type Prompter interface {
	Action(options []huh.Option[forms.Action]) (forms.Action, error)
	PickSegment(title string, segments []segment.Segment) (string, error)
	EditSegment(n int, duration segment.MediaDuration, result *forms.SegmentFormResult) error
	Confirm(title, description string) (bool, error)
}

// FormPrompter runs each prompt as a huh form on the terminal.
type FormPrompter struct{}

func (FormPrompter) Action(options []huh.Option[forms.Action]) (forms.Action, error) {
	var action forms.Action
	err := forms.NewActionForm(options, &action).Run()
	return action, err
}

func (FormPrompter) PickSegment(title string, segments []segment.Segment) (string, error) {
	var id string
	err := forms.NewSegmentPickerForm(title, segments, &id).Run()
	return id, err
}

func (FormPrompter) EditSegment(n int, duration segment.MediaDuration, result *forms.SegmentFormResult) error {
	return forms.NewSegmentForm(n, duration, result).Run()
}

func (FormPrompter) Confirm(title, description string) (bool, error) {
	var ok bool
	err := forms.NewConfirmForm(title, description, "Yes", "No", &ok).Run()
	return ok, err
}

// PreviewFunc plays one segment, e.g. in mpv.
type PreviewFunc func(seg segment.Segment) error

// Editor edits a session until the user cuts or quits.
type Editor struct {
	session  *segment.Session
	prompt   Prompter
	out      io.Writer
	preview  PreviewFunc
	lastErr  string
	rendered bool
}

// NewEditor creates an editor for session writing its screen to out. A nil
// preview hides the preview action.
func NewEditor(session *segment.Session, prompt Prompter, out io.Writer, preview PreviewFunc) *Editor {
	if prompt == nil {
		prompt = FormPrompter{}
	}
	return &Editor{session: session, prompt: prompt, out: out, preview: preview}
}

// Run shows the session menu in a loop. It returns the validated, normalized
// segments when the user chooses to cut, or nil when the user quits.
func (e *Editor) Run() ([]segment.Segment, error) {
	for {
		e.render()

		action, err := e.prompt.Action(forms.ActionOptions(e.session.Len(), e.preview != nil))
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		segments, done, err := e.handle(action)
		if err != nil {
			return nil, err
		}
		if done {
			return segments, nil
		}
	}
}

func (e *Editor) handle(action forms.Action) ([]segment.Segment, bool, error) {
	e.lastErr = ""

	switch action {
	case forms.ActionAdd:
		seg := e.session.Add("", "")
		return nil, false, e.edit(seg.ID)

	case forms.ActionEdit:
		id, err := e.pick("Edit which segment?")
		if err != nil || id == "" {
			return nil, false, err
		}
		return nil, false, e.edit(id)

	case forms.ActionRemove:
		id, err := e.pick("Remove which segment?")
		if err != nil || id == "" {
			return nil, false, err
		}
		_, n, err := e.session.Get(id)
		if err != nil {
			return nil, false, err
		}
		ok, err := e.prompt.Confirm(fmt.Sprintf("Remove segment %d?", n), "Later segments are renumbered.")
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return nil, false, err
		}
		if ok {
			return nil, false, e.session.Remove(id)
		}

	case forms.ActionPreview:
		id, err := e.pick("Preview which segment?")
		if err != nil || id == "" {
			return nil, false, err
		}
		seg, _, err := e.session.Get(id)
		if err != nil {
			return nil, false, err
		}
		if err := e.preview(seg); err != nil {
			e.lastErr = err.Error()
		}

	case forms.ActionCut:
		segments, err := e.session.Validate()
		if err != nil {
			e.lastErr = err.Error()
			return nil, false, nil
		}
		return segments, true, nil

	case forms.ActionQuit:
		return nil, true, nil
	}
	return nil, false, nil
}

// pick returns "" when the user backs out.
func (e *Editor) pick(title string) (string, error) {
	id, err := e.prompt.PickSegment(title, e.session.Snapshot())
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	return id, err
}

// edit opens the segment form and stores the result. Both fields are
// normalized afterwards, the way leaving an input field does.
func (e *Editor) edit(id string) error {
	seg, n, err := e.session.Get(id)
	if err != nil {
		return err
	}

	result := forms.SegmentFormResult{Start: seg.Start, End: seg.End}
	err = e.prompt.EditSegment(n, e.session.Duration(), &result)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	return apply(e.session, id, result)
}

func apply(session *segment.Session, id string, result forms.SegmentFormResult) error {
	if err := session.Update(id, segment.FieldStart, result.Start); err != nil {
		return err
	}
	if err := session.Update(id, segment.FieldEnd, result.End); err != nil {
		return err
	}
	for _, f := range []segment.Field{segment.FieldStart, segment.FieldEnd} {
		if _, err := session.Normalize(id, f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) render() {
	if e.rendered {
		fmt.Fprintln(e.out)
	}
	e.rendered = true

	name := filepath.Base(e.session.InputPath())
	duration := e.session.Duration()
	durationText := styles.SecondaryText.Render(duration.String())
	if !duration.Known {
		durationText = styles.Error.Render("Duration unknown")
	}

	fmt.Fprintln(e.out, styles.Title.Render(name)+"  "+durationText)
	fmt.Fprintln(e.out, components.SegmentList(e.session.Snapshot(), duration, 60))
	if e.lastErr != "" {
		fmt.Fprintln(e.out, styles.Error.Render(e.lastErr))
	}
}
