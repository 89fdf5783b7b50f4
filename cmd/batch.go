package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/user/segcut/clip"
	"github.com/user/segcut/db"
	"github.com/user/segcut/segment"
	"github.com/user/segcut/tui"
)

// printObserver prints plain progress lines.
type printObserver struct {
	out io.Writer
}

func (p printObserver) OnBatchStart(string, int) {}

func (p printObserver) OnJobStart(job clip.CuttingJob, total int) {
	fmt.Fprintf(p.out, "Processing segment %d of %d...\n", job.Number, total)
}

func (p printObserver) OnJobDone(o clip.CutOutcome, total int) {
	if o.Status != clip.StatusSucceeded {
		return
	}
	fmt.Fprintf(p.out, "✓ %s (%s, %s)\n", o.OutputPath, o.Mode, humanize.Bytes(uint64(o.Size)))
}

func (p printObserver) OnBatchDone(*clip.BatchResult) {}

// runBatch cuts validated segments, records history and prints the summary.
func runBatch(ctx context.Context, out io.Writer, inputPath string, duration segment.MediaDuration, segments []segment.Segment, useTUI bool) error {
	batch := func(ctx context.Context, progress clip.Observer) (*clip.BatchResult, error) {
		observers := clip.MultiObserver{clip.LogObserver{Logger: app.logger.Named("batch")}, progress}
		if database := app.openHistory(); database != nil {
			defer database.Close()
			observers = append(observers, db.NewHistoryObserver(database, duration, app.logger))
		}
		return clip.NewBatch(app.cutter(), observers, app.logger).Run(ctx, inputPath, segments)
	}

	var res *clip.BatchResult
	var err error
	if useTUI {
		res, err = tui.RunProgress(ctx, inputPath, len(segments), batch, printObserver{out: out})
	} else {
		res, err = batch(ctx, printObserver{out: out})
	}
	if err != nil {
		return err
	}
	return summarize(out, res)
}

// summarize prints the final status line and returns the batch error.
func summarize(out io.Writer, res *clip.BatchResult) error {
	err := res.Err()
	switch {
	case err == nil:
		n := res.Succeeded()
		plural := ""
		if n > 1 {
			plural = "s"
		}
		fmt.Fprintf(out, "Successfully created %d video segment%s!\n", n, plural)
		return nil
	case clip.IsKind(err, clip.KindCancelled) && !hasFailure(res):
		fmt.Fprintf(out, "Stopped after %d of %d segments.\n", res.Succeeded(), len(res.Outcomes))
		return errInterrupted
	}
	return fmt.Errorf("Failed to process video: %w", err)
}

func hasFailure(res *clip.BatchResult) bool {
	for _, o := range res.Outcomes {
		if o.Status == clip.StatusFailed {
			return true
		}
	}
	return false
}
