package engine

import (
	"sync"
	"sync/atomic"

	"github.com/GrGLeo/dataguard/accum"
	"github.com/GrGLeo/dataguard/compile"
)

// columnState holds every piece of mutable, concurrency-safe state one
// column accumulates across pass 1. Counters are atomic because many
// batch workers update them at once; mono triples and stats buffers are
// protected by a mutex since they grow a slice rather than add a number.
type columnState struct {
	plan *compile.ColumnPlan

	nullViolations      int64
	typeCheckViolations int64
	domainViolations    []int64 // aligned with plan.Domain

	monoMu      sync.Mutex
	monoTriples [][]monoTriple // [monoRuleIdx] -> triples across batches

	unicity *accum.Unicity

	stats      *accum.Stats
	statBufMu  sync.Mutex
	statBuf    []float64 // only populated when the reader isn't replayable
	needsStats bool

	statViolations []int64 // aligned with plan.Stats; filled in during finalize
}

func newColumnState(cp *compile.ColumnPlan) *columnState {
	cs := &columnState{
		plan:             cp,
		domainViolations: make([]int64, len(cp.Domain)),
		monoTriples:      make([][]monoTriple, len(cp.Mono)),
	}
	if cp.Unicity != nil {
		cs.unicity = accum.NewUnicity()
	}
	if len(cp.Stats) > 0 {
		cs.stats = accum.NewStats()
		cs.needsStats = true
		cs.statViolations = make([]int64, len(cp.Stats))
	}
	return cs
}

func (cs *columnState) addDomainViolation(idx int) {
	atomic.AddInt64(&cs.domainViolations[idx], 1)
}

func (cs *columnState) addMonoTriple(idx int, t monoTriple) {
	cs.monoMu.Lock()
	cs.monoTriples[idx] = append(cs.monoTriples[idx], t)
	cs.monoMu.Unlock()
}

func (cs *columnState) bufferStat(v float64) {
	cs.statBufMu.Lock()
	cs.statBuf = append(cs.statBuf, v)
	cs.statBufMu.Unlock()
}
