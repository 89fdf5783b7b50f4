package clip

import (
	"github.com/hashicorp/go-hclog"
)

// Observer receives batch progress. Calls come from the goroutine running the
// batch, in order; they never affect control flow.
type Observer interface {
	OnBatchStart(inputPath string, total int)
	// OnJobStart is called before each job ("processing segment i of n").
	OnJobStart(job CuttingJob, total int)
	OnJobDone(outcome CutOutcome, total int)
	OnBatchDone(result *BatchResult)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnBatchStart(string, int)   {}
func (NopObserver) OnJobStart(CuttingJob, int) {}
func (NopObserver) OnJobDone(CutOutcome, int)  {}
func (NopObserver) OnBatchDone(*BatchResult)   {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnBatchStart(inputPath string, total int) {
	for _, o := range m {
		o.OnBatchStart(inputPath, total)
	}
}

func (m MultiObserver) OnJobStart(job CuttingJob, total int) {
	for _, o := range m {
		o.OnJobStart(job, total)
	}
}

func (m MultiObserver) OnJobDone(outcome CutOutcome, total int) {
	for _, o := range m {
		o.OnJobDone(outcome, total)
	}
}

func (m MultiObserver) OnBatchDone(result *BatchResult) {
	for _, o := range m {
		o.OnBatchDone(result)
	}
}

// LogObserver writes batch events to a logger.
type LogObserver struct {
	Logger hclog.Logger
}

func (o LogObserver) OnBatchStart(inputPath string, total int) {
	o.Logger.Debug("batch started", "input", inputPath, "segments", total)
}

func (o LogObserver) OnJobStart(job CuttingJob, total int) {
	o.Logger.Debug("job started", "segment", job.Number, "of", total, "start", job.Start, "duration", job.Duration)
}

func (o LogObserver) OnJobDone(outcome CutOutcome, total int) {
	if outcome.Err != nil {
		o.Logger.Debug("job finished", "segment", outcome.Job.Number, "status", outcome.Status, "error", outcome.Err)
		return
	}
	o.Logger.Debug("job finished", "segment", outcome.Job.Number, "status", outcome.Status, "path", outcome.OutputPath)
}

func (o LogObserver) OnBatchDone(result *BatchResult) {
	o.Logger.Debug("batch finished", "succeeded", result.Succeeded(), "segments", len(result.Outcomes))
}
