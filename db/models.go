package db

import "time"

// Batch status values.
const (
	BatchRunning   = "running"
	BatchSucceeded = "succeeded"
	BatchFailed    = "failed"
	BatchCancelled = "cancelled"
)

// Batch represents a row in the batches table.
type Batch struct {
	ID           int64
	InputPath    string
	Duration     *float64 // nil when the media duration was unknown
	SegmentCount int
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       string
}

// Cut represents a row in the cuts table.
type Cut struct {
	ID            int64
	BatchID       int64
	SegmentNumber int
	StartSeconds  float64
	EndSeconds    float64
	OutputPath    string
	Mode          string
	Status        string
	Filesize      int64
	Error         string
	StartedAt     *time.Time
	FinishedAt    *time.Time
}
