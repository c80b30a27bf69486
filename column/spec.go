// Package column provides the fluent, typed builders used to assemble a
// ColumnSpec: `string_column(name).with_min_length(3).is_not_null()`-style
// chains, one builder type per rule.ColumnType so that calling a
// string-only method on an integer column is a compile error in Go, not a
// runtime one.
//
// Builder chains are infallible and side-effect-free: parameter validation
// (empty sets, min > max, bad regexes, negative thresholds...) is deferred
// to package compile, exactly as spec §4.2 requires.
package column

import "github.com/GrGLeo/dataguard/rule"

// Spec is the frozen, immutable result of a builder chain: a column name,
// its declared type, and the ordered list of rules attached to it.
type Spec struct {
	Name  string
	Type  rule.ColumnType
	Rules []rule.ColumnRule
	// Format is the time.Parse-style layout used to parse a Date column
	// out of raw CSV text. Ignored for every other ColumnType.
	Format string
}

// Builder is implemented by every per-type builder; Build freezes the
// chain into a Spec. It is also called implicitly when a builder is handed
// to a table, so callers rarely need to call it directly.
type Builder interface {
	Build() *Spec
}

func appendRule(rules []rule.ColumnRule, kind rule.Kind, params any) []rule.ColumnRule {
	return append(rules, rule.ColumnRule{
		Kind:      kind,
		Params:    params,
		Threshold: rule.DefaultThreshold,
	})
}

func withThreshold(rules []rule.ColumnRule, t rule.Threshold) []rule.ColumnRule {
	if len(rules) > 0 {
		rules[len(rules)-1].Threshold = t
	}
	return rules
}
