// Package engine executes a compiled plan against a reader and produces a
// report. It is the validated core's runtime (spec §4.4/§5): a bounded
// worker pool processes batches concurrently in pass 1, row-order-sensitive
// reductions (Monotonicity) are finalized in input order afterward, and a
// pass 2 re-evaluates any StdDevCheck/MeanVariance rules once their column
// statistics are final.
package engine

import "github.com/golang-sql/civil"

// Options configures one Run.
type Options struct {
	// BatchSize is forwarded to the reader; zero uses reader.DefaultBatchSize.
	BatchSize int
	// Concurrency bounds the number of batches processed at once. Zero or
	// negative sizes the pool to runtime.GOMAXPROCS(0), a fixed-size pool
	// matched to hardware parallelism (spec §4.4/§5).
	Concurrency int
	// Today is "now" for DateNotFuture/DateNotPast. Callers running tests
	// against fixed data should pass a fixed date for determinism.
	Today civil.Date
}
