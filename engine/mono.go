package engine

import (
	"cmp"
	"slices"

	"github.com/GrGLeo/dataguard/compile"
)

// monoTriple is one batch's independent contribution to a Monotonicity
// rule: the batch's first and last non-null values and the violation count
// among pairs internal to the batch. order is the batch's StartRow, used
// to sort contributions back into input order before the final reduction
// (spec §5 "a deterministic reduction using each batch's (first_non_null,
// last_non_null, internal_violations) triple").
type monoTriple struct {
	order              int64
	first, last        any
	hasValue           bool
	internalViolations int64
}

// monoTripleFor scans one batch's decoded values for a single
// Monotonicity rule and produces its triple; pass 1 computes these
// independently per batch so batches can be processed concurrently.
func monoTripleFor(rule *compile.MonotonicityRule, startRow int64, d decoded) monoTriple {
	t := monoTriple{order: startRow}
	var prev any
	havePrev := false

	for i, v := range d.values {
		if d.skip[i] {
			continue
		}
		if !t.hasValue {
			t.first = v
			t.hasValue = true
		}
		if havePrev && rule.Violates(prev, v) {
			t.internalViolations++
		}
		t.last = v
		prev = v
		havePrev = true
	}
	return t
}

// reduceMono finalizes a Monotonicity rule's total violations across every
// batch's triple, in input order: internal violations sum directly, and
// each boundary between consecutive batches contributes one more
// violation check between the previous batch's last non-null value and
// the next batch's first non-null value.
func reduceMono(rule *compile.MonotonicityRule, triples []monoTriple) int64 {
	sorted := slices.Clone(triples)
	slices.SortFunc(sorted, func(a, b monoTriple) int { return cmp.Compare(a.order, b.order) })

	var total int64
	var prev any
	havePrev := false

	for _, t := range sorted {
		total += t.internalViolations
		if !t.hasValue {
			continue
		}
		if havePrev && rule.Violates(prev, t.first) {
			total++
		}
		prev = t.last
		havePrev = true
	}
	return total
}
