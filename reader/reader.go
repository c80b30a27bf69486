// Package reader defines the batch-producing collaborator contract from
// spec §6: a finite sequence of columnar batches, each a typed contiguous
// array with a null bitmap per column. CSV and Parquet readers are the two
// concrete implementations; per spec §1 they are collaborators, not part
// of the validated core, but dataguard ships both so the CLI works
// end-to-end.
package reader

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/GrGLeo/dataguard/rule"
)

// ColumnSchema describes one column as the reader exposes it: its name,
// the type it yields (for CSV this is always String; the engine's
// TypeCheck converts it), and whether that type is authoritative (Typed)
// or requires a TypeCheck pass.
type ColumnSchema struct {
	Name  string
	Type  rule.ColumnType
	Typed bool
}

// Batch is a contiguous slice of rows exposed as named, typed columns.
// StartRow is the batch's first row index in the overall input, in input
// order; row-order-sensitive rules (Monotonicity) rely on batches being
// produced in input order even though they may be processed out of order.
type Batch struct {
	StartRow int64
	RowCount int64
	Columns  map[string]arrow.Array
}

// Options configures batch production.
type Options struct {
	// BatchSize is the target row count per batch. Readers may emit a
	// smaller final batch.
	BatchSize int
}

// DefaultBatchSize is used when Options.BatchSize is zero.
const DefaultBatchSize = 8192

// Reader is the external collaborator contract: a finite sequence of
// batches over a table's columns (spec §6).
type Reader interface {
	// Schema reports the columns this reader exposes, in a stable order.
	Schema(ctx context.Context) ([]ColumnSchema, error)

	// Batches streams the table's rows as a sequence of batches, in input
	// order, onto the returned channel. The error channel carries at most
	// one ReadError; it is buffered and is closed just before the batch
	// channel is closed, so once the batch channel is drained a receive on
	// it yields the error, if any. Both channels are closed when the
	// reader is exhausted or ctx is cancelled.
	Batches(ctx context.Context, opts Options) (<-chan Batch, <-chan error)

	// Replayable reports whether Batches can be called again from the
	// start. Streaming-stat rules (StdDevCheck, MeanVariance) need a
	// second pass; a non-replayable reader forces the engine to buffer.
	Replayable() bool
}

// ReadError wraps a reader failure per spec §7; it aborts validation of
// the affected table with no partial report.
type ReadError struct {
	Table string
	Err   error
}

func (e *ReadError) Error() string {
	return "read error on table " + e.Table + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }
