// Package relation defines cross-column constraints: row-wise comparisons
// between two columns of a table. The variant set is small and fixed per
// spec §3, but deliberately open to the addition of new comparison kinds
// without restructuring (spec §3's "additional arithmetic comparisons may
// be added without restructuring").
package relation

import "github.com/GrGLeo/dataguard/rule"

// Kind identifies a relation variant.
type Kind string

const (
	KindDateCompare    Kind = "date_compare"
	KindNumericCompare Kind = "numeric_compare"
)

// Op is a row-wise comparison operator.
type Op string

const (
	LT Op = "<"
	LE Op = "<="
	EQ Op = "="
	GE Op = ">="
	GT Op = ">"
)

// Spec is one cross-column constraint: Left <op> Right, evaluated per row.
// Rows where either side is null count as violations (spec §3, §9 open
// question (c)).
type Spec struct {
	Kind      Kind
	Left      string
	Right     string
	Op        Op
	Threshold rule.Threshold
}

// DateCompare builds a row-wise comparison between two Date columns.
func DateCompare(left, right string, op Op) Spec {
	return Spec{Kind: KindDateCompare, Left: left, Right: right, Op: op, Threshold: rule.DefaultThreshold}
}

// NumericCompare builds a row-wise comparison between two Integer/Float
// columns (ADDED: spec §3 permits additional arithmetic comparisons).
func NumericCompare(left, right string, op Op) Spec {
	return Spec{Kind: KindNumericCompare, Left: left, Right: right, Op: op, Threshold: rule.DefaultThreshold}
}

// WithThreshold returns a copy of s with its threshold replaced.
func (s Spec) WithThreshold(t rule.Threshold) Spec {
	s.Threshold = t
	return s
}
