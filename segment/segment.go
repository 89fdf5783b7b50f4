// Package segment holds the user's cutting requests and validates them
// against a probed media duration.
package segment

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/user/segcut/pkg/timeutil"
)

// ErrNotFound is returned when a segment ID is not in the session.
var ErrNotFound = errors.New("segment not found")

// Field names an editable bound of a segment.
type Field string

const (
	FieldStart Field = "start"
	FieldEnd   Field = "end"
)

const (
	defaultStart = "0:00:00"
	// defaultEnd is used for new segments when the media duration is unknown.
	defaultEnd = "0:00:10"
)

// MediaDuration is the total playable length of an input file.
// Known is false when probing failed; the end-bound check is then skipped.
type MediaDuration struct {
	Seconds float64
	Known   bool
}

// KnownDuration returns a MediaDuration for a successfully probed length.
func KnownDuration(seconds float64) MediaDuration {
	return MediaDuration{Seconds: seconds, Known: true}
}

// String renders the duration for display, or "unknown".
func (d MediaDuration) String() string {
	if !d.Known {
		return "unknown"
	}
	return timeutil.FormatTimeDisplay(d.Seconds)
}

// Segment is a requested time range. Start and End hold the text as entered
// and may be unnormalized or even inconsistent while being edited.
type Segment struct {
	ID    string
	Start string
	End   string
}

// StartSeconds returns the parsed start bound.
func (s Segment) StartSeconds() float64 { return timeutil.ParseTime(s.Start) }

// EndSeconds returns the parsed end bound.
func (s Segment) EndSeconds() float64 { return timeutil.ParseTime(s.End) }

// Length returns end - start, floored at 0, for display while editing.
func (s Segment) Length() float64 {
	l := s.EndSeconds() - s.StartSeconds()
	if l < 0 {
		return 0
	}
	return l
}

// Session is the ordered, uniquely keyed segment collection for one input file.
// It is safe for concurrent use; readers get copies via Snapshot.
type Session struct {
	mu        sync.Mutex
	inputPath string
	duration  MediaDuration
	segments  []Segment
	newID     func() string
}

// NewSession creates an empty session for inputPath.
func NewSession(inputPath string, duration MediaDuration) *Session {
	return &Session{
		inputPath: inputPath,
		duration:  duration,
		newID:     newID,
	}
}

// newID returns a time-ordered identifier so IDs sort in creation order.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// InputPath returns the selected input file.
func (s *Session) InputPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputPath
}

// Duration returns the media duration known for the input.
func (s *Session) Duration() MediaDuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// SetDuration records a (re-)probed duration.
func (s *Session) SetDuration(d MediaDuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = d
}

// SelectInput switches to a new input file and clears all segments.
func (s *Session) SelectInput(path string, d MediaDuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputPath = path
	s.duration = d
	s.segments = nil
}

// Add appends a segment. Empty bounds get the defaults: start at 0:00:00 and
// end at the media duration, or 0:00:10 when the duration is unknown.
func (s *Session) Add(start, end string) Segment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if start == "" {
		start = defaultStart
	}
	if end == "" {
		end = defaultEnd
		if s.duration.Known && s.duration.Seconds > 0 {
			end = timeutil.FormatTimeInput(s.duration.Seconds)
		}
	}

	seg := Segment{ID: s.newID(), Start: start, End: end}
	s.segments = append(s.segments, seg)
	return seg
}

// Remove deletes the segment with the given ID.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.segments = append(s.segments[:i], s.segments[i+1:]...)
	return nil
}

// Update stores raw text for one bound of a segment without normalizing it.
func (s *Session) Update(id string, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	switch field {
	case FieldStart:
		s.segments[i].Start = value
	case FieldEnd:
		s.segments[i].End = value
	default:
		return fmt.Errorf("update %s: unknown field %q", id, field)
	}
	return nil
}

// Normalize rewrites one bound into canonical H:MM:SS form, as done when an
// input loses focus. It returns the normalized text.
func (s *Session) Normalize(id string, field Field) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", fmt.Errorf("normalize %s: %w", id, ErrNotFound)
	}
	switch field {
	case FieldStart:
		s.segments[i].Start = timeutil.FormatTimeInput(timeutil.ParseTime(s.segments[i].Start))
		return s.segments[i].Start, nil
	case FieldEnd:
		s.segments[i].End = timeutil.FormatTimeInput(timeutil.ParseTime(s.segments[i].End))
		return s.segments[i].End, nil
	}
	return "", fmt.Errorf("normalize %s: unknown field %q", id, field)
}

// Get returns the segment and its 1-based position.
func (s *Session) Get(id string) (Segment, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Segment{}, 0, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.segments[i], i + 1, nil
}

// Len returns the number of segments.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.segments)
}

// Snapshot returns a copy of the segments in order.
func (s *Session) Snapshot() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Replace overwrites segment bounds from a snapshot, matched by ID.
// Segments removed from the session in the meantime are ignored.
func (s *Session) Replace(segments []Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seg := range segments {
		if i := s.indexOf(seg.ID); i >= 0 {
			s.segments[i] = seg
		}
	}
}

// Validate checks every segment against the session duration and, when all
// pass, normalizes their bounds in place. It returns the normalized snapshot.
func (s *Session) Validate() ([]Segment, error) {
	snap := s.Snapshot()
	if err := Validate(snap, s.Duration()); err != nil {
		return nil, err
	}
	s.Replace(snap)
	return snap, nil
}

func (s *Session) indexOf(id string) int {
	for i, seg := range s.segments {
		if seg.ID == id {
			return i
		}
	}
	return -1
}
