package compile

import (
	"regexp"

	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/relation"
	"github.com/GrGLeo/dataguard/rule"
)

// EvalContext carries the few pieces of state a value-by-value evaluator
// needs beyond the value itself. Today backs DateNotFuture/DateNotPast,
// which compare against the engine's notion of "now" (spec §3) rather than
// a compile-time constant.
type EvalContext struct {
	Today civil.Date
}

// StatelessRule evaluates one value at a time with no memory of prior
// values. Violates is only ever invoked on non-null, already-typed values;
// nulls are handled by the engine before a rule ever sees them (spec §4.4
// "Null skip"). TypeCheck's own StatelessRule carries no Violates closure
// (Violates is nil): the engine parses the raw string itself via
// ParseValue so it can hand the typed result to every downstream rule.
type StatelessRule struct {
	Kind      rule.Kind
	Threshold rule.Threshold
	Violates  func(v any, ctx *EvalContext) bool
}

// MonotonicityRule evaluates pairs of consecutive non-null values, in
// input order, possibly across batch boundaries.
type MonotonicityRule struct {
	Kind      rule.Kind
	Threshold rule.Threshold
	Ascending bool
	Strict    bool
	Less      func(a, b any) bool
}

// Violates reports whether the transition from prev to curr breaks the
// configured ordering.
func (m *MonotonicityRule) Violates(prev, curr any) bool {
	if m.Ascending {
		if m.Strict {
			return !m.Less(prev, curr)
		}
		return m.Less(curr, prev)
	}
	if m.Strict {
		return !m.Less(curr, prev)
	}
	return m.Less(prev, curr)
}

// UnicityRule canonicalizes a value before insertion into the shared
// UnicityAccumulator (spec §9's float NaN/-0 and date-as-day-number rules).
type UnicityRule struct {
	Kind      rule.Kind
	Threshold rule.Threshold
	Canon     func(v any) any
}

// StatRule is a StdDevCheck or MeanVariance rule: it registers against a
// shared StatsAccumulator during pass 1 and is only evaluated in pass 2,
// once mean/variance/stddev are final.
type StatRule struct {
	Kind               rule.Kind
	Threshold          rule.Threshold
	MaxStdDev          float64
	MaxVariancePercent float64
}

// Violates evaluates this stat rule against one value and the finalized
// column statistics.
func (s *StatRule) Violates(v float64, mean, stddev float64) bool {
	switch s.Kind {
	case rule.KindStdDevCheck:
		if stddev == 0 {
			return false
		}
		dev := v - mean
		if dev < 0 {
			dev = -dev
		}
		return dev > s.MaxStdDev*stddev
	case rule.KindMeanVariance:
		if mean == 0 {
			return false
		}
		dev := v - mean
		if dev < 0 {
			dev = -dev
		}
		absMean := mean
		if absMean < 0 {
			absMean = -absMean
		}
		return dev/absMean > s.MaxVariancePercent
	default:
		return false
	}
}

// ColumnPlan is the compiled, ordered rule chain for one column:
// TypeCheck? -> NullCheck? -> domain rules (declaration order) -> Unicity?
// per spec §4.3 step 4.
type ColumnPlan struct {
	Name         string
	DeclaredType rule.ColumnType
	SourceTyped  bool // true when the reader already yields this type (Parquet)
	DateFormat   string // time.Parse layout; only meaningful when DeclaredType is Date

	TypeCheck *StatelessRule
	NullCheck *StatelessRule
	Domain    []*StatelessRule
	Mono      []*MonotonicityRule
	Stats     []*StatRule
	Unicity   *UnicityRule
}

// RelationPlan is the compiled form of a relation.Spec: resolved column
// positions plus the operator.
type RelationPlan struct {
	Kind      relation.Kind
	Left      string
	Right     string
	Op        relation.Op
	Threshold rule.Threshold
}

// ExecutablePlan is the immutable compiled form of a table's rules.
// Reusable across multiple Engine.Run invocations on different inputs.
type ExecutablePlan struct {
	TableName string
	Columns   []*ColumnPlan
	Relations []*RelationPlan
}

// ColumnByName returns the compiled plan for a column, or nil.
func (p *ExecutablePlan) ColumnByName(name string) *ColumnPlan {
	for _, c := range p.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// compiledRegex pairs a regexp with the rule it backs, kept here only so
// artefact preparation has one obvious home; the regexp itself is what the
// StatelessRule closure captures.
type compiledRegex struct {
	kind rule.Kind
	re   *regexp.Regexp
}

// dayNumber canonicalizes a civil.Date for uniqueness comparisons: days
// since the Unix epoch, matching arrow's DATE32 representation.
func dayNumber(d civil.Date) int32 {
	return int32(d.DaysSince(civil.Date{Year: 1970, Month: 1, Day: 1}))
}
