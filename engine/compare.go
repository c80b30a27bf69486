package engine

import (
	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/compile"
	"github.com/GrGLeo/dataguard/relation"
)

// evaluateRelation counts row-wise violations of one relation over one
// batch's decoded Left/Right columns. Rows where either side was null or
// failed TypeCheck count as violations, matching DateCompare's documented
// null handling (spec §4.4, §9 open question (c)) extended to every
// relation kind.
func evaluateRelation(rp *compile.RelationPlan, left, right decoded) int64 {
	n := len(left.values)
	if len(right.values) < n {
		n = len(right.values)
	}
	var violations int64
	for i := 0; i < n; i++ {
		if left.skip[i] || right.skip[i] {
			violations++
			continue
		}
		if !relationHolds(rp, left.values[i], right.values[i]) {
			violations++
		}
	}
	return violations
}

func relationHolds(rp *compile.RelationPlan, l, r any) bool {
	switch rp.Kind {
	case relation.KindDateCompare:
		return compareDates(l.(civil.Date), r.(civil.Date), rp.Op)
	case relation.KindNumericCompare:
		return compareFloats(asFloat64(l), asFloat64(r), rp.Op)
	default:
		return true
	}
}

func compareDates(l, r civil.Date, op relation.Op) bool {
	switch op {
	case relation.LT:
		return l.Before(r)
	case relation.LE:
		return l.Before(r) || l == r
	case relation.EQ:
		return l == r
	case relation.GE:
		return l.After(r) || l == r
	case relation.GT:
		return l.After(r)
	default:
		return false
	}
}

func compareFloats(l, r float64, op relation.Op) bool {
	switch op {
	case relation.LT:
		return l < r
	case relation.LE:
		return l <= r
	case relation.EQ:
		return l == r
	case relation.GE:
		return l >= r
	case relation.GT:
		return l > r
	default:
		return false
	}
}
