// Package mpv plays segment ranges in mpv for previewing before a cut.
package mpv

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/segcut/deps"
	"github.com/user/segcut/pkg/timeutil"
)

// Args builds the mpv command line that plays the range [start, end) of
// videoPath. With loop set the range repeats until mpv is closed.
func Args(videoPath string, start, end float64, loop bool) []string {
	args := []string{
		"--start=" + timeutil.FormatFFmpeg(start),
		"--title=" + fmt.Sprintf("segcut preview %s - %s", timeutil.FormatTimeDisplay(start), timeutil.FormatTimeDisplay(end)),
	}
	if loop {
		args = append(args,
			"--ab-loop-a="+timeutil.FormatFFmpeg(start),
			"--ab-loop-b="+timeutil.FormatFFmpeg(end),
		)
	} else {
		args = append(args, "--end="+timeutil.FormatFFmpeg(end))
	}
	return append(args, "--", videoPath)
}

// Preview plays a range of videoPath and blocks until mpv exits.
// It checks that mpv is installed first and returns an error with install link if not.
func Preview(ctx context.Context, videoPath string, start, end float64, loop bool) error {
	if err := deps.CheckMpv(); err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("nothing to preview: end %s is not after start %s",
			timeutil.FormatTimeInput(end), timeutil.FormatTimeInput(start))
	}

	cmd := exec.CommandContext(ctx, "mpv", Args(videoPath, start, end, loop)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mpv: %w", err)
	}
	return nil
}
