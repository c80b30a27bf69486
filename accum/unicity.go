// Package accum holds the cross-batch accumulators: state that must see
// every batch of a column before a rule can be evaluated, because no single
// batch carries enough information on its own (spec §5 "Cross-batch
// accumulators"). Unicity needs every value seen so far; StdDevCheck and
// MeanVariance need a finalized mean and standard deviation before any
// single value can be judged an outlier.
package accum

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

const shardCount = 64

// Unicity tracks distinct values across every batch of a column
// concurrently. Values are canonicalized by the caller before Observe so
// that e.g. NaN, -0.0, and day-equivalent dates collide as required by
// spec §5's "Unicity canonicalization" rules; Unicity itself only ever
// compares the canonical forms for equality.
type Unicity struct {
	shards     [shardCount]unicityShard
	seed       maphash.Seed
	duplicates int64
	total      int64
}

type unicityShard struct {
	mu   sync.Mutex
	seen map[any]struct{}
}

// NewUnicity returns an accumulator ready to observe canonicalized values.
func NewUnicity() *Unicity {
	u := &Unicity{seed: maphash.MakeSeed()}
	for i := range u.shards {
		u.shards[i].seen = make(map[any]struct{})
	}
	return u
}

// Observe records one canonical value, returning true if it had already
// been seen (a duplicate). Safe for concurrent use across batches.
func (u *Unicity) Observe(canonical any) bool {
	atomic.AddInt64(&u.total, 1)
	shard := &u.shards[u.shardFor(canonical)]

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.seen[canonical]; ok {
		atomic.AddInt64(&u.duplicates, 1)
		return true
	}
	shard.seen[canonical] = struct{}{}
	return false
}

func (u *Unicity) shardFor(v any) uint64 {
	var h maphash.Hash
	h.SetSeed(u.seed)
	writeHashable(&h, v)
	return h.Sum64() % shardCount
}

func writeHashable(h *maphash.Hash, v any) {
	switch val := v.(type) {
	case string:
		h.WriteString(val)
	case int64:
		h.WriteString(int64ToBytes(val))
	case int32:
		h.WriteString(int64ToBytes(int64(val)))
	case float64:
		h.WriteString(int64ToBytes(int64(val)))
	default:
		h.WriteString("?")
	}
}

func int64ToBytes(n int64) string {
	buf := make([]byte, 8)
	u := uint64(n)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	return string(buf)
}

// Violations returns the number of duplicate observations recorded so far.
// A value's second (and every subsequent) occurrence counts as one
// violation, matching spec §5's violation counting for Unicity.
func (u *Unicity) Violations() int64 { return atomic.LoadInt64(&u.duplicates) }

// Total returns the number of values observed so far.
func (u *Unicity) Total() int64 { return atomic.LoadInt64(&u.total) }
