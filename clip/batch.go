package clip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/user/segcut/segment"
)

var (
	// ErrNoInput is returned when a batch is started without an input file.
	ErrNoInput = errors.New("please select a video file first")
	// ErrNoSegments is returned when a batch is started with no segments.
	ErrNoSegments = errors.New("please add at least one segment to cut")
)

// CuttingJob is one segment prepared for cutting.
type CuttingJob struct {
	InputPath string
	Start     float64
	Duration  float64
	// Number is the 1-based segment number used for output naming.
	Number int
}

// End returns the end of the job's range in seconds.
func (j CuttingJob) End() float64 { return j.Start + j.Duration }

// Status is the outcome of one job.
type Status int

const (
	StatusSucceeded Status = iota + 1
	StatusFailed
	// StatusSkipped: the job was not attempted because an earlier one failed,
	// or the batch was cancelled before or while it ran.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// CutOutcome is the atomic result of one job.
type CutOutcome struct {
	Job        CuttingJob
	Status     Status
	OutputPath string
	Mode       Mode
	Size       int64
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// BatchResult holds one outcome per segment, in segment order.
type BatchResult struct {
	InputPath string
	Outcomes  []CutOutcome
}

// Err returns the error of the first failed job, or nil.
func (r *BatchResult) Err() error {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return fmt.Errorf("segment %d: %w", o.Job.Number, o.Err)
		}
	}
	for _, o := range r.Outcomes {
		if o.Status == StatusSkipped && o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// Succeeded returns the number of segments written.
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusSucceeded {
			n++
		}
	}
	return n
}

// SegmentCutter is the part of Cutter the batch depends on.
type SegmentCutter interface {
	Cut(ctx context.Context, inputPath string, start, end float64, n int) (*Output, error)
}

// Batch runs cuts one after another.
type Batch struct {
	cutter   SegmentCutter
	observer Observer
	logger   hclog.Logger
	now      func() time.Time
}

// NewBatch creates a batch runner. A nil observer is allowed.
func NewBatch(cutter SegmentCutter, observer Observer, logger hclog.Logger) *Batch {
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Batch{
		cutter:   cutter,
		observer: observer,
		logger:   logger.Named("batch"),
		now:      time.Now,
	}
}

// Run cuts segments from inputPath strictly in order, one ffmpeg process at a
// time. The first failure stops the batch; later segments are reported as
// skipped and files already written are kept. Cancelling ctx takes effect at
// the next job boundary: the running extraction is allowed to finish. If it
// fails anyway (ffmpeg got the same interrupt), no fallback is tried and the
// job is reported skipped as cancelled.
func (b *Batch) Run(ctx context.Context, inputPath string, segments []segment.Segment) (*BatchResult, error) {
	if inputPath == "" {
		return nil, ErrNoInput
	}
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	total := len(segments)
	res := &BatchResult{InputPath: inputPath, Outcomes: make([]CutOutcome, total)}
	for i, seg := range segments {
		start, end := seg.StartSeconds(), seg.EndSeconds()
		res.Outcomes[i] = CutOutcome{
			Job:    CuttingJob{InputPath: inputPath, Start: start, Duration: end - start, Number: i + 1},
			Status: StatusSkipped,
		}
	}
	b.observer.OnBatchStart(inputPath, total)

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			b.logger.Info("batch cancelled", "remaining", total-i)
			markSkipped(res.Outcomes[i:], &CutError{Kind: KindCancelled, Segment: i + 1, Err: err})
			break
		}

		out := &res.Outcomes[i]
		b.observer.OnJobStart(out.Job, total)
		b.logger.Info("processing segment", "segment", i+1, "of", total)
		out.StartedAt = b.now()

		if err := segment.Check(seg, i+1, segment.MediaDuration{}); err != nil {
			out.Status = StatusFailed
			out.Err = &CutError{Kind: KindInvalidSegment, Segment: i + 1, Err: err}
		} else {
			written, err := b.cutter.Cut(ctx, inputPath, out.Job.Start, out.Job.End(), i+1)
			if IsKind(err, KindCancelled) {
				out.Status = StatusSkipped
				out.Err = err
			} else if err != nil {
				out.Status = StatusFailed
				out.Err = err
			} else {
				out.Status = StatusSucceeded
				out.OutputPath = written.Path
				out.Mode = written.Mode
				out.Size = written.Size
			}
		}
		out.FinishedAt = b.now()
		b.observer.OnJobDone(*out, total)

		if out.Status == StatusSkipped {
			b.logger.Info("batch cancelled during segment", "segment", i+1, "remaining", total-i-1)
			markSkipped(res.Outcomes[i+1:], &CutError{Kind: KindCancelled, Segment: i + 2, Err: ctx.Err()})
			break
		}
		if out.Status == StatusFailed {
			b.logger.Error("segment failed, stopping batch", "segment", i+1, "error", out.Err)
			break
		}
	}

	b.observer.OnBatchDone(res)
	return res, nil
}

func markSkipped(outcomes []CutOutcome, err error) {
	for i := range outcomes {
		outcomes[i].Status = StatusSkipped
		outcomes[i].Err = err
	}
}
