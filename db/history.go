package db

import (
	"database/sql"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/user/segcut/clip"
	"github.com/user/segcut/segment"
)

// HistoryObserver records batch outcomes as they happen. Write failures are
// logged and never interrupt the batch.
type HistoryObserver struct {
	db       *sql.DB
	logger   hclog.Logger
	duration segment.MediaDuration
	now      func() time.Time

	batchID int64
}

// NewHistoryObserver returns an observer writing to db. duration is stored
// with the batch when known.
func NewHistoryObserver(db *sql.DB, duration segment.MediaDuration, logger hclog.Logger) *HistoryObserver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HistoryObserver{
		db:       db,
		logger:   logger.Named("history"),
		duration: duration,
		now:      time.Now,
	}
}

// BatchID returns the ID of the last recorded batch, or 0.
func (h *HistoryObserver) BatchID() int64 { return h.batchID }

func (h *HistoryObserver) OnBatchStart(inputPath string, total int) {
	var duration *float64
	if h.duration.Known {
		d := h.duration.Seconds
		duration = &d
	}
	id, err := InsertBatch(h.db, inputPath, duration, total, h.now())
	if err != nil {
		h.logger.Warn("could not record batch", "error", err)
		h.batchID = 0
		return
	}
	h.batchID = id
}

func (h *HistoryObserver) OnJobStart(clip.CuttingJob, int) {}

func (h *HistoryObserver) OnJobDone(o clip.CutOutcome, total int) {
	if h.batchID == 0 {
		return
	}
	if _, err := InsertCut(h.db, h.batchID, o); err != nil {
		h.logger.Warn("could not record cut", "segment", o.Job.Number, "error", err)
	}
}

func (h *HistoryObserver) OnBatchDone(res *clip.BatchResult) {
	if h.batchID == 0 {
		return
	}
	if err := FinishBatch(h.db, h.batchID, BatchStatus(res), h.now()); err != nil {
		h.logger.Warn("could not finish batch", "error", err)
	}
}

// BatchStatus summarizes a finished batch.
func BatchStatus(res *clip.BatchResult) string {
	err := res.Err()
	switch {
	case err == nil:
		return BatchSucceeded
	case clip.IsKind(err, clip.KindCancelled) && res.Succeeded()+countCancelled(res) == len(res.Outcomes):
		return BatchCancelled
	}
	return BatchFailed
}

func countCancelled(res *clip.BatchResult) int {
	n := 0
	for _, o := range res.Outcomes {
		if o.Status == clip.StatusSkipped && clip.IsKind(o.Err, clip.KindCancelled) {
			n++
		}
	}
	return n
}
