package accum

import (
	"math"
	"sync"
)

// Stats accumulates mean and variance across concurrently processed
// batches using Welford's online algorithm per batch and Chan et al.'s
// parallel-combine formula to merge batch-local accumulators (spec §5
// "StdDevCheck and MeanVariance require a finalized mean/stddev across the
// whole column before any value can be evaluated").
type Stats struct {
	mu    sync.Mutex
	count int64
	mean  float64
	m2    float64
}

// NewStats returns an empty accumulator.
func NewStats() *Stats { return &Stats{} }

// Batch is a batch-local accumulator; call Observe for every non-null value
// in a batch, then Merge it into the shared Stats once. Keeping the running
// Welford state batch-local, and only merging the three summary numbers
// (count, mean, M2), is what lets pass 1 process batches concurrently
// without contending on a single mutex per value.
type Batch struct {
	count int64
	mean  float64
	m2    float64
}

// NewBatch returns an empty batch-local accumulator.
func NewBatch() *Batch { return &Batch{} }

// Observe folds one value into the batch-local accumulator (Welford).
func (b *Batch) Observe(v float64) {
	b.count++
	delta := v - b.mean
	b.mean += delta / float64(b.count)
	delta2 := v - b.mean
	b.m2 += delta * delta2
}

// Merge combines this batch's accumulator into the shared Stats using
// Chan's parallel-variance formula. Safe for concurrent use.
func (s *Stats) Merge(b *Batch) {
	if b.count == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		s.count, s.mean, s.m2 = b.count, b.mean, b.m2
		return
	}

	delta := b.mean - s.mean
	totalCount := s.count + b.count
	newMean := s.mean + delta*float64(b.count)/float64(totalCount)
	newM2 := s.m2 + b.m2 + delta*delta*float64(s.count)*float64(b.count)/float64(totalCount)

	s.count = totalCount
	s.mean = newMean
	s.m2 = newM2
}

// Finalized holds the mean and population standard deviation computed from
// every observed value.
type Finalized struct {
	Count  int64
	Mean   float64
	StdDev float64
}

// Finalize computes the population standard deviation from the merged
// state. A count below 2 yields a zero standard deviation (no variance is
// observable from fewer than two samples) rather than NaN.
func (s *Stats) Finalize() Finalized {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count < 2 {
		return Finalized{Count: s.count, Mean: s.mean, StdDev: 0}
	}
	variance := s.m2 / float64(s.count)
	return Finalized{Count: s.count, Mean: s.mean, StdDev: math.Sqrt(variance)}
}
