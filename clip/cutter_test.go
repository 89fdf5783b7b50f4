package clip

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/user/segcut/deps"
	"github.com/user/segcut/probe"
)

// fakePreflight stands in for ffprobe.
type fakePreflight struct {
	err   error
	calls int
}

func (f *fakePreflight) Probe(ctx context.Context, path string) (*probe.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &probe.Result{Format: probe.Format{Duration: "600"}}, nil
}

// step describes what the fake ffmpeg does for one invocation.
type step struct {
	write string
	err   error
}

// fakeFfmpeg writes step.write to the output path (last argument) and returns step.err.
type fakeFfmpeg struct {
	t      *testing.T
	steps  map[Mode]step
	calls  [][]string
	before func(args []string)
}

func (f *fakeFfmpeg) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.before != nil {
		f.before(args)
	}
	mode := ModeReencode
	if slices.Contains(args, "copy") {
		mode = ModeCopy
	}
	s := f.steps[mode]
	out := args[len(args)-1]
	if s.write != "" || s.err == nil {
		if err := os.WriteFile(out, []byte(s.write), 0o644); err != nil {
			f.t.Fatalf("fake ffmpeg write: %v", err)
		}
	}
	return nil, s.err
}

func exitErr(msg string) error {
	return &deps.ExitError{Name: "ffmpeg", Code: 1, Output: []byte(msg)}
}

func setupInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(in, []byte("source"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return in
}

func TestCutStreamCopySucceeds(t *testing.T) {
	in := setupInput(t)
	pf := &fakePreflight{}
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{ModeCopy: {write: "copied"}}}
	c := NewCutter("ffmpeg", pf, WithRunner(ff))

	out, err := c.Cut(context.Background(), in, 10, 25.5, 2)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	want := filepath.Join(filepath.Dir(in), "movie_segment_2.mp4")
	if out.Path != want || out.Mode != ModeCopy || out.Size != int64(len("copied")) {
		t.Errorf("Output = %+v; want path %s via copy", out, want)
	}
	if pf.calls != 1 || len(ff.calls) != 1 {
		t.Errorf("preflight calls %d, ffmpeg calls %d; want 1, 1", pf.calls, len(ff.calls))
	}

	args := strings.Join(ff.calls[0], " ")
	for _, part := range []string{"-ss 10.000 -i " + in, "-t 15.500", "-c copy", "-avoid_negative_ts make_zero"} {
		if !strings.Contains(args, part) {
			t.Errorf("args %q missing %q", args, part)
		}
	}
}

func TestCutFallsBackToReencode(t *testing.T) {
	in := setupInput(t)
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{
		ModeCopy:     {err: exitErr("could not find tag for codec")},
		ModeReencode: {write: "re-encoded output"},
	}}
	// The failed copy leaves an empty file behind, as ffmpeg does.
	ff.before = func(args []string) {
		if slices.Contains(args, "copy") {
			_ = os.WriteFile(args[len(args)-1], nil, 0o644)
		}
	}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff), WithCodecs("libx265", "libopus"))

	out, err := c.Cut(context.Background(), in, 0, 5, 1)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if out.Mode != ModeReencode {
		t.Errorf("Mode = %v; want reencode", out.Mode)
	}

	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "re-encoded output" {
		t.Errorf("output content = %q; want fallback content", data)
	}
	info, _ := os.Stat(out.Path)
	if info.Size() == 0 || out.Size != info.Size() {
		t.Errorf("output size = %d (reported %d); want non-empty", info.Size(), out.Size)
	}

	entries, _ := os.ReadDir(filepath.Dir(in))
	if len(entries) != 2 {
		t.Errorf("directory holds %d entries; want input and one output", len(entries))
	}

	args := strings.Join(ff.calls[1], " ")
	if !strings.Contains(args, "-c:v libx265 -c:a libopus") || !strings.Contains(args, "-ss 0.000") {
		t.Errorf("fallback args = %q", args)
	}
}

func TestCutBothAttemptsFail(t *testing.T) {
	in := setupInput(t)
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{
		ModeCopy:     {err: exitErr("copy problem")},
		ModeReencode: {err: exitErr("encoder libx264 not found")},
	}}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))

	_, err := c.Cut(context.Background(), in, 0, 5, 3)
	if !IsKind(err, KindExtractionFailed) {
		t.Fatalf("err = %v; want KindExtractionFailed", err)
	}
	if !strings.Contains(err.Error(), "encoder libx264 not found") || strings.Contains(err.Error(), "copy problem") {
		t.Errorf("message %q should carry only the fallback error", err.Error())
	}
	if len(ff.calls) != 2 {
		t.Errorf("ffmpeg calls = %d; want 2 (no retry beyond fallback)", len(ff.calls))
	}
}

func TestCutPreflightFailure(t *testing.T) {
	in := setupInput(t)
	pf := &fakePreflight{err: &probe.Error{Kind: probe.KindToolFailed, Err: errors.New("exec: not found")}}
	ff := &fakeFfmpeg{t: t}
	c := NewCutter("ffmpeg", pf, WithRunner(ff))

	_, err := c.Cut(context.Background(), in, 0, 5, 1)
	if !IsKind(err, KindToolUnavailable) {
		t.Fatalf("err = %v; want KindToolUnavailable", err)
	}
	if !strings.Contains(err.Error(), "install it manually") {
		t.Errorf("message %q lacks install guidance", err.Error())
	}
	if len(ff.calls) != 0 {
		t.Errorf("ffmpeg should not run after failed pre-flight")
	}
}

func TestCutSetupErrorSkipsFallback(t *testing.T) {
	in := setupInput(t)
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{
		ModeCopy: {err: &deps.StartError{Name: "ffmpeg", Err: errors.New("permission denied")}},
	}}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))

	_, err := c.Cut(context.Background(), in, 0, 5, 1)
	if !IsKind(err, KindToolUnavailable) {
		t.Fatalf("err = %v; want KindToolUnavailable", err)
	}
	if len(ff.calls) != 1 {
		t.Errorf("ffmpeg calls = %d; want 1", len(ff.calls))
	}
}

func TestCutEmptyCopyOutputFallsBack(t *testing.T) {
	in := setupInput(t)
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{
		ModeCopy:     {},
		ModeReencode: {write: "frames"},
	}}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))

	out, err := c.Cut(context.Background(), in, 0, 5, 1)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if out.Mode != ModeReencode || out.Size != int64(len("frames")) {
		t.Errorf("Output = %+v; want re-encoded frames", out)
	}
}

func TestCutRemovesStaleOutput(t *testing.T) {
	in := setupInput(t)
	stale := OutputPath(in, 1)
	if err := os.WriteFile(stale, []byte("old run"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{ModeCopy: {write: "new"}}}
	ff.before = func(args []string) {
		if _, err := os.Stat(stale); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("stale output still present when ffmpeg starts: %v", err)
		}
	}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))

	if _, err := c.Cut(context.Background(), in, 0, 5, 1); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	data, _ := os.ReadFile(stale)
	if string(data) != "new" {
		t.Errorf("output = %q; want new content", data)
	}
}

func TestCutCleanupFailure(t *testing.T) {
	in := setupInput(t)
	ff := &fakeFfmpeg{t: t}
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))
	c.remove = func(string) error { return fs.ErrPermission }

	_, err := c.Cut(context.Background(), in, 0, 5, 1)
	if !IsKind(err, KindCleanupFailed) || !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("err = %v; want KindCleanupFailed wrapping ErrPermission", err)
	}
	if len(ff.calls) != 0 {
		t.Errorf("ffmpeg should not run when cleanup fails")
	}
}

func TestCutCancelledRemovesPartialOutput(t *testing.T) {
	in := setupInput(t)
	ctx, cancel := context.WithCancel(context.Background())
	ff := &fakeFfmpeg{t: t, steps: map[Mode]step{
		ModeCopy: {write: "partial", err: exitErr("signal: killed")},
	}}
	ff.before = func([]string) { cancel() }
	c := NewCutter("ffmpeg", &fakePreflight{}, WithRunner(ff))

	_, err := c.Cut(ctx, in, 0, 5, 1)
	if !IsKind(err, KindCancelled) {
		t.Fatalf("err = %v; want KindCancelled", err)
	}
	if _, err := os.Stat(OutputPath(in, 1)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("partial output left behind: %v", err)
	}
	if len(ff.calls) != 1 {
		t.Errorf("ffmpeg calls = %d; fallback must not start after cancel", len(ff.calls))
	}
}
