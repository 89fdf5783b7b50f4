// Package probe reads media metadata with ffprobe.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/user/segcut/deps"
)

// Kind classifies a probe failure.
type Kind int

const (
	// KindToolFailed means ffprobe could not be run, crashed, or could not read the file.
	KindToolFailed Kind = iota + 1
	// KindNoDuration means the file was read but reports no usable duration.
	KindNoDuration
)

func (k Kind) String() string {
	switch k {
	case KindToolFailed:
		return "tool failed"
	case KindNoDuration:
		return "no duration"
	}
	return "unknown"
}

// Error is a failed probe. Neither kind is retried.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindNoDuration {
		return "could not determine video duration"
	}
	return fmt.Sprintf("failed to read video: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Stream is one media stream reported by ffprobe.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// Format is the container information reported by ffprobe.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// Result is the metadata of one media file.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Duration returns the container duration in seconds.
func (r *Result) Duration() (float64, error) {
	d := strings.TrimSpace(r.Format.Duration)
	if d == "" || d == "N/A" {
		return 0, fmt.Errorf("duration not available in format metadata")
	}
	v, err := strconv.ParseFloat(d, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration '%s': %w", d, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive duration %s", d)
	}
	return v, nil
}

// HasVideo reports whether the file carries at least one video stream.
func (r *Result) HasVideo() bool {
	for _, s := range r.Streams {
		if s.CodecType == "video" {
			return true
		}
	}
	return false
}

// Prober runs ffprobe. Each call invokes the tool exactly once.
type Prober struct {
	bin    string
	runner deps.Runner
	logger hclog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithRunner replaces the process runner.
func WithRunner(r deps.Runner) Option {
	return func(p *Prober) { p.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Prober) { p.logger = l.Named("probe") }
}

// New creates a prober for the ffprobe binary at bin.
func New(bin string, opts ...Option) *Prober {
	p := &Prober{
		bin:    bin,
		runner: deps.ExecRunner{},
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe reads format and stream metadata for path.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		return nil, &Error{Kind: KindToolFailed, Path: path, Err: fmt.Errorf("source path cannot be empty")}
	}

	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	p.logger.Debug("running ffprobe", "bin", p.bin, "args", args)

	out, err := p.runner.Run(ctx, p.bin, args...)
	if err != nil {
		p.logger.Debug("ffprobe failed", "path", path, "error", err)
		return nil, &Error{Kind: KindToolFailed, Path: path, Err: err}
	}

	var res Result
	if err := json.Unmarshal(jsonBody(out), &res); err != nil {
		return nil, &Error{Kind: KindToolFailed, Path: path, Err: fmt.Errorf("failed to parse ffprobe JSON output: %w", err)}
	}
	return &res, nil
}

// Duration probes path and returns its duration in seconds.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	res, err := p.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	d, err := res.Duration()
	if err != nil {
		return 0, &Error{Kind: KindNoDuration, Path: path, Err: err}
	}
	p.logger.Debug("probed duration", "path", path, "seconds", d)
	return d, nil
}

// jsonBody strips any warning lines ffprobe printed before the JSON object,
// since stdout and stderr share one buffer.
func jsonBody(out []byte) []byte {
	s := string(out)
	if i := strings.Index(s, "{"); i > 0 {
		return []byte(s[i:])
	}
	return out
}
