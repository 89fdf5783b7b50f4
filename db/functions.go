package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/user/segcut/clip"
)

// InsertBatch records the start of a batch and returns its ID.
func InsertBatch(db *sql.DB, inputPath string, duration *float64, segmentCount int, startedAt time.Time) (int64, error) {
	result, err := db.Exec(InsertBatchSQL, inputPath, duration, segmentCount, startedAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	return result.LastInsertId()
}

// FinishBatch sets the final status of a batch.
func FinishBatch(db *sql.DB, id int64, status string, finishedAt time.Time) error {
	if _, err := db.Exec(FinishBatchSQL, finishedAt.UnixMilli(), status, id); err != nil {
		return fmt.Errorf("finish batch %d: %w", id, err)
	}
	return nil
}

// InsertCut records the outcome of one attempted segment.
func InsertCut(db *sql.DB, batchID int64, o clip.CutOutcome) (int64, error) {
	var mode, errText string
	if o.Status == clip.StatusSucceeded {
		mode = o.Mode.String()
	}
	if o.Err != nil {
		errText = o.Err.Error()
	}

	result, err := db.Exec(InsertCutSQL,
		batchID, o.Job.Number, o.Job.Start, o.Job.End(), o.OutputPath, mode,
		o.Status.String(), o.Size, errText, millis(o.StartedAt), millis(o.FinishedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert cut: %w", err)
	}
	return result.LastInsertId()
}

// SelectRecentBatches returns up to limit batches, newest first.
func SelectRecentBatches(db *sql.DB, limit int) ([]Batch, error) {
	rows, err := db.Query(SelectRecentBatchesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *b)
	}
	return batches, rows.Err()
}

// SelectBatch returns one batch, or nil when it does not exist.
func SelectBatch(db *sql.DB, id int64) (*Batch, error) {
	b, err := scanBatch(db.QueryRow(SelectBatchByIDSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// SelectCutsByBatch returns the cuts of a batch in segment order.
func SelectCutsByBatch(db *sql.DB, batchID int64) ([]Cut, error) {
	rows, err := db.Query(SelectCutsByBatchSQL, batchID)
	if err != nil {
		return nil, fmt.Errorf("select cuts: %w", err)
	}
	defer rows.Close()

	var cuts []Cut
	for rows.Next() {
		var c Cut
		var started, finished sql.NullInt64
		if err := rows.Scan(&c.ID, &c.BatchID, &c.SegmentNumber, &c.StartSeconds, &c.EndSeconds,
			&c.OutputPath, &c.Mode, &c.Status, &c.Filesize, &c.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan cut: %w", err)
		}
		c.StartedAt = fromMillis(started)
		c.FinishedAt = fromMillis(finished)
		cuts = append(cuts, c)
	}
	return cuts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(s scanner) (*Batch, error) {
	var b Batch
	var duration sql.NullFloat64
	var started int64
	var finished sql.NullInt64
	if err := s.Scan(&b.ID, &b.InputPath, &duration, &b.SegmentCount, &started, &finished, &b.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	if duration.Valid {
		b.Duration = &duration.Float64
	}
	b.StartedAt = time.UnixMilli(started)
	b.FinishedAt = fromMillis(finished)
	return &b, nil
}

// millis stores zero times as NULL.
func millis(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}
