package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/user/segcut/segment"
	"github.com/user/segcut/tui/forms"
)

// scriptedPrompter replays prepared answers.
type scriptedPrompter struct {
	actions []forms.Action
	picks   []int // 0-based index into the current segments
	edits   []forms.SegmentFormResult
	confirm bool
}

func (p *scriptedPrompter) Action(options []huh.Option[forms.Action]) (forms.Action, error) {
	if len(p.actions) == 0 {
		return "", huh.ErrUserAborted
	}
	a := p.actions[0]
	p.actions = p.actions[1:]
	return a, nil
}

func (p *scriptedPrompter) PickSegment(title string, segments []segment.Segment) (string, error) {
	i := p.picks[0]
	p.picks = p.picks[1:]
	return segments[i].ID, nil
}

func (p *scriptedPrompter) EditSegment(n int, d segment.MediaDuration, r *forms.SegmentFormResult) error {
	if len(p.edits) == 0 {
		return huh.ErrUserAborted
	}
	*r = p.edits[0]
	p.edits = p.edits[1:]
	return nil
}

func (p *scriptedPrompter) Confirm(title, description string) (bool, error) {
	return p.confirm, nil
}

func TestEditorAddEditCut(t *testing.T) {
	session := segment.NewSession("/v/movie.mp4", segment.KnownDuration(300))
	p := &scriptedPrompter{
		actions: []forms.Action{forms.ActionAdd, forms.ActionAdd, forms.ActionEdit, forms.ActionCut},
		picks:   []int{0},
		edits: []forms.SegmentFormResult{
			{Start: "1:05", End: "90"},
			{Start: "0:02:00", End: "2:30"},
			{Start: "10", End: "0:00:20"},
		},
	}
	var out bytes.Buffer

	segs, err := NewEditor(session, p, &out, nil).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments; want 2", len(segs))
	}
	want := [][2]string{{"0:00:10", "0:00:20"}, {"0:02:00", "0:02:30"}}
	for i, seg := range segs {
		if seg.Start != want[i][0] || seg.End != want[i][1] {
			t.Errorf("segment %d = %s-%s; want %s-%s", i+1, seg.Start, seg.End, want[i][0], want[i][1])
		}
	}
	if !strings.Contains(out.String(), "movie.mp4") {
		t.Errorf("screen lacks the file name:\n%s", out.String())
	}
}

func TestEditorAbortedAddKeepsDefaults(t *testing.T) {
	session := segment.NewSession("/v/movie.mp4", segment.KnownDuration(95))
	p := &scriptedPrompter{actions: []forms.Action{forms.ActionAdd, forms.ActionQuit}}

	segs, err := NewEditor(session, p, &bytes.Buffer{}, nil).Run()
	if err != nil || segs != nil {
		t.Fatalf("Run = %v, %v; want nil, nil on quit", segs, err)
	}
	snap := session.Snapshot()
	if len(snap) != 1 || snap[0].Start != "0:00:00" || snap[0].End != "0:01:35" {
		t.Errorf("session = %+v", snap)
	}
}

func TestEditorValidationErrorStaysInLoop(t *testing.T) {
	session := segment.NewSession("/v/movie.mp4", segment.KnownDuration(60))
	p := &scriptedPrompter{
		actions: []forms.Action{forms.ActionAdd, forms.ActionCut, forms.ActionRemove},
		edits:   []forms.SegmentFormResult{{Start: "0:00:30", End: "0:00:10"}},
		picks:   []int{0},
		confirm: true,
	}
	var out bytes.Buffer

	segs, err := NewEditor(session, p, &out, nil).Run()
	if err != nil || segs != nil {
		t.Fatalf("Run = %v, %v; want nil, nil after abort", segs, err)
	}
	if !strings.Contains(out.String(), "Segment 1: start time must be less than end time") {
		t.Errorf("validation message not shown:\n%s", out.String())
	}
	if session.Len() != 0 {
		t.Errorf("segment should have been removed, have %d", session.Len())
	}
}

func TestEditorPreview(t *testing.T) {
	session := segment.NewSession("/v/movie.mp4", segment.MediaDuration{})
	session.Add("0:00:05", "0:00:08")
	var previewed []segment.Segment
	preview := func(seg segment.Segment) error {
		previewed = append(previewed, seg)
		return errors.New("mpv not found")
	}
	p := &scriptedPrompter{actions: []forms.Action{forms.ActionPreview}, picks: []int{0}}
	var out bytes.Buffer

	if _, err := NewEditor(session, p, &out, preview).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(previewed) != 1 || previewed[0].Start != "0:00:05" {
		t.Errorf("previewed = %+v", previewed)
	}
	if !strings.Contains(out.String(), "mpv not found") || !strings.Contains(out.String(), "Duration unknown") {
		t.Errorf("screen:\n%s", out.String())
	}
}
