// Package clip cuts segments out of a video with ffmpeg and runs batches of cuts.
package clip

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/user/segcut/deps"
	"github.com/user/segcut/pkg/timeutil"
	"github.com/user/segcut/probe"
)

const (
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

// Mode is how ffmpeg extracts a segment.
type Mode int

const (
	// ModeCopy copies compressed streams without re-encoding.
	ModeCopy Mode = iota + 1
	// ModeReencode decodes and re-compresses, allowing arbitrary cut points.
	ModeReencode
)

func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeReencode:
		return "reencode"
	}
	return ""
}

// Kind classifies a failed cut.
type Kind int

const (
	// KindToolUnavailable: ffmpeg/ffprobe could not open the input or could not be started.
	KindToolUnavailable Kind = iota + 1
	// KindExtractionFailed: both stream copy and re-encode failed.
	KindExtractionFailed
	// KindCleanupFailed: a stale output file could not be removed.
	KindCleanupFailed
	// KindInvalidSegment: start is not before end.
	KindInvalidSegment
	// KindCancelled: the cut was interrupted or never started because the batch was cancelled.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindToolUnavailable:
		return "tool unavailable"
	case KindExtractionFailed:
		return "extraction failed"
	case KindCleanupFailed:
		return "cleanup failed"
	case KindInvalidSegment:
		return "invalid segment"
	case KindCancelled:
		return "cancelled"
	}
	return "unknown"
}

// CutError is a failed cut of one segment.
type CutError struct {
	Kind    Kind
	Segment int
	Err     error
}

func (e *CutError) Error() string {
	switch e.Kind {
	case KindToolUnavailable:
		return fmt.Sprintf("FFmpeg is not available (%v); %s", e.Err, deps.FfmpegInstallHint)
	case KindExtractionFailed:
		return fmt.Sprintf("Failed to cut video: %v", e.Err)
	case KindCleanupFailed:
		return fmt.Sprintf("could not remove previous output: %v", e.Err)
	case KindCancelled:
		return "cancelled"
	}
	return e.Err.Error()
}

func (e *CutError) Unwrap() error { return e.Err }

// IsKind reports whether err is a CutError of kind k.
func IsKind(err error, k Kind) bool {
	var e *CutError
	return errors.As(err, &e) && e.Kind == k
}

// Output is a successfully written segment file.
type Output struct {
	Path string
	Mode Mode
	Size int64
}

// Preflighter opens the input to confirm the tool can read it.
type Preflighter interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// Cutter extracts single segments. It holds no per-job state and may be reused.
type Cutter struct {
	ffmpeg     string
	videoCodec string
	audioCodec string
	runner     deps.Runner
	preflight  Preflighter
	logger     hclog.Logger

	remove func(string) error
	stat   func(string) (os.FileInfo, error)
}

// Option configures a Cutter.
type Option func(*Cutter)

// WithRunner replaces the process runner.
func WithRunner(r deps.Runner) Option {
	return func(c *Cutter) { c.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Cutter) { c.logger = l.Named("cutter") }
}

// WithCodecs sets the video and audio codecs used by the re-encode fallback.
// Empty values keep the defaults.
func WithCodecs(video, audio string) Option {
	return func(c *Cutter) {
		if video != "" {
			c.videoCodec = video
		}
		if audio != "" {
			c.audioCodec = audio
		}
	}
}

// NewCutter creates a cutter for the ffmpeg binary at bin, using preflight to
// check the input before each cut.
func NewCutter(bin string, preflight Preflighter, opts ...Option) *Cutter {
	c := &Cutter{
		ffmpeg:     bin,
		videoCodec: DefaultVideoCodec,
		audioCodec: DefaultAudioCodec,
		runner:     deps.ExecRunner{},
		preflight:  preflight,
		logger:     hclog.NewNullLogger(),
		remove:     os.Remove,
		stat:       os.Stat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type attemptStatus int

const (
	attemptOK attemptStatus = iota
	// attemptRecoverable: ffmpeg ran and failed; another mode may succeed.
	attemptRecoverable
	// attemptFatal: ffmpeg could not be run; no mode can succeed.
	attemptFatal
)

type attemptResult struct {
	status attemptStatus
	size   int64
	err    error
}

// Cut writes the range [start, end) of inputPath to OutputPath(inputPath, n).
// It tries a stream copy first and falls back to a re-encode once when the
// copy fails. Both attempts write the same path, so a partial copy output is
// overwritten by the fallback.
//
// Cancelling ctx does not kill a running tool. It is checked after each
// attempt: a copy that fails after cancellation is not retried, its partial
// output is removed and the error has KindCancelled. A copy that completes is
// kept.
func (c *Cutter) Cut(ctx context.Context, inputPath string, start, end float64, n int) (*Output, error) {
	run := context.WithoutCancel(ctx)
	if _, err := c.preflight.Probe(run, inputPath); err != nil {
		if ctx.Err() != nil {
			return nil, &CutError{Kind: KindCancelled, Segment: n, Err: ctx.Err()}
		}
		c.logger.Warn("pre-flight probe failed", "input", inputPath, "error", err)
		return nil, &CutError{Kind: KindToolUnavailable, Segment: n, Err: err}
	}

	outPath := OutputPath(inputPath, n)
	if err := c.remove(outPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("could not remove stale output", "path", outPath, "error", err)
		return nil, &CutError{Kind: KindCleanupFailed, Segment: n, Err: err}
	}

	duration := end - start
	var last error
	for _, mode := range []Mode{ModeCopy, ModeReencode} {
		res := c.attempt(run, mode, inputPath, start, duration, outPath)
		switch res.status {
		case attemptOK:
			c.logger.Info("segment written", "segment", n, "path", outPath, "mode", mode, "bytes", res.size)
			return &Output{Path: outPath, Mode: mode, Size: res.size}, nil
		case attemptFatal:
			return nil, c.fail(ctx, n, outPath, KindToolUnavailable, res.err)
		}

		last = res.err
		if ctx.Err() != nil {
			return nil, c.fail(ctx, n, outPath, KindCancelled, ctx.Err())
		}
		if mode == ModeCopy {
			c.logger.Warn("stream copy failed, re-encoding", "segment", n, "error", res.err)
		}
	}

	return nil, c.fail(ctx, n, outPath, KindExtractionFailed, last)
}

// fail removes any partial output left by an interrupted run and builds the error.
func (c *Cutter) fail(ctx context.Context, n int, outPath string, kind Kind, err error) error {
	if ctx.Err() != nil {
		kind = KindCancelled
		if rmErr := c.remove(outPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			c.logger.Warn("could not remove partial output", "path", outPath, "error", rmErr)
		}
	}
	return &CutError{Kind: kind, Segment: n, Err: err}
}

func (c *Cutter) attempt(ctx context.Context, mode Mode, inputPath string, start, duration float64, outPath string) attemptResult {
	args := c.args(mode, inputPath, start, duration, outPath)
	c.logger.Debug("running ffmpeg", "mode", mode, "bin", c.ffmpeg, "args", args)

	if _, err := c.runner.Run(ctx, c.ffmpeg, args...); err != nil {
		if deps.IsExitError(err) {
			return attemptResult{status: attemptRecoverable, err: err}
		}
		return attemptResult{status: attemptFatal, err: err}
	}

	info, err := c.stat(outPath)
	if err != nil {
		return attemptResult{status: attemptRecoverable, err: fmt.Errorf("ffmpeg produced no output: %w", err)}
	}
	if info.Size() == 0 {
		return attemptResult{status: attemptRecoverable, err: fmt.Errorf("ffmpeg produced an empty file")}
	}
	return attemptResult{status: attemptOK, size: info.Size()}
}

// args builds the ffmpeg command line. -ss before -i seeks the input.
func (c *Cutter) args(mode Mode, inputPath string, start, duration float64, outPath string) []string {
	args := []string{
		"-y",
		"-ss", timeutil.FormatFFmpeg(start),
		"-i", inputPath,
		"-t", timeutil.FormatFFmpeg(duration),
	}
	if mode == ModeCopy {
		args = append(args, "-c", "copy")
	} else {
		args = append(args, "-c:v", c.videoCodec, "-c:a", c.audioCodec)
	}
	return append(args, "-avoid_negative_ts", "make_zero", outPath)
}
