package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Batch queries

//go:embed sql/insert_batch.sql
var InsertBatchSQL string

//go:embed sql/finish_batch.sql
var FinishBatchSQL string

//go:embed sql/select_recent_batches.sql
var SelectRecentBatchesSQL string

//go:embed sql/select_batch_by_id.sql
var SelectBatchByIDSQL string

// Cut queries

//go:embed sql/insert_cut.sql
var InsertCutSQL string

//go:embed sql/select_cuts_by_batch.sql
var SelectCutsByBatchSQL string
