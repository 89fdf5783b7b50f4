package segment

import (
	"fmt"

	"github.com/user/segcut/pkg/timeutil"
)

// Rule identifies which segment constraint failed.
type Rule int

const (
	// RuleStartBeforeEnd requires start < end.
	RuleStartBeforeEnd Rule = iota + 1
	// RuleEndWithinDuration requires end <= media duration.
	RuleEndWithinDuration
)

// ValidationError reports the first invalid segment (1-based Index).
type ValidationError struct {
	Index    int
	Rule     Rule
	Duration MediaDuration
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case RuleEndWithinDuration:
		return fmt.Sprintf("Segment %d: end time exceeds media duration (%s)", e.Index, e.Duration)
	default:
		return fmt.Sprintf("Segment %d: start time must be less than end time", e.Index)
	}
}

// Check validates a single segment. Index is used only for error reporting.
func Check(seg Segment, index int, duration MediaDuration) error {
	start := seg.StartSeconds()
	end := seg.EndSeconds()

	if start >= end {
		return &ValidationError{Index: index, Rule: RuleStartBeforeEnd, Duration: duration}
	}
	if duration.Known && end > duration.Seconds {
		return &ValidationError{Index: index, Rule: RuleEndWithinDuration, Duration: duration}
	}
	return nil
}

// Validate checks segments in order and stops at the first violation.
// When every segment passes, each Start and End is rewritten in place to
// canonical H:MM:SS. An unknown duration disables the end-bound rule.
func Validate(segments []Segment, duration MediaDuration) error {
	for i := range segments {
		if err := Check(segments[i], i+1, duration); err != nil {
			return err
		}
	}
	for i := range segments {
		segments[i].Start = timeutil.FormatTimeInput(segments[i].StartSeconds())
		segments[i].End = timeutil.FormatTimeInput(segments[i].EndSeconds())
	}
	return nil
}
