// Package rule defines the closed catalog of column rule kinds, their
// parameter shapes, and the column types each kind applies to.
//
// The catalog itself never decides whether a rule is well-formed for a
// given column (that is the compiler's job, package compile); it only
// enumerates what exists and what it means.
package rule

import "fmt"

// ColumnType is one of the four declared column types a table can have.
type ColumnType int

const (
	String ColumnType = iota
	Integer
	Float
	Date
)

func (t ColumnType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Threshold is the fraction of violations a rule tolerates before it fails,
// in [0, 1]. The comparison is `violations / row_count <= threshold`.
type Threshold float64

// DefaultThreshold is used when a rule declares none: any violation fails.
const DefaultThreshold Threshold = 0.0

// Validate reports whether the threshold lies in the required [0, 1] range.
func (t Threshold) Validate() error {
	if t < 0 || t > 1 {
		return fmt.Errorf("threshold %v out of range [0, 1]", float64(t))
	}
	return nil
}

// Kind identifies a catalog rule. The string value is the stable, reportable
// name used in JSON reports. TOML config rule blocks do not use it; they
// name the builder method instead (e.g. "with_min_length"), which package
// config maps to a Kind.
type Kind string

const (
	KindStringLength    Kind = "string_length"
	KindStringRegex     Kind = "string_regex"
	KindStringInSet     Kind = "string_in_set"
	KindStringCharClass Kind = "string_char_class"
	KindNumericRange    Kind = "numeric_range"
	KindMonotonicity    Kind = "monotonicity"
	KindStdDevCheck     Kind = "std_dev_check"
	KindMeanVariance    Kind = "mean_variance"
	KindDateBefore      Kind = "date_before"
	KindDateAfter       Kind = "date_after"
	KindDateNotFuture   Kind = "date_not_future"
	KindDateNotPast     Kind = "date_not_past"
	KindDateWeekday     Kind = "date_weekday"
	KindDateWeekend     Kind = "date_weekend"
	KindTypeCheck       Kind = "type_check"
	KindNullCheck       Kind = "null_check"
	KindUnicity         Kind = "unicity"
)

// CharClass enumerates the predicates StringCharClass accepts.
type CharClass string

const (
	ClassNumeric      CharClass = "numeric"
	ClassAlpha        CharClass = "alpha"
	ClassAlphanumeric CharClass = "alphanumeric"
	ClassLowercase    CharClass = "lowercase"
	ClassUppercase    CharClass = "uppercase"
	ClassEmail        CharClass = "email"
	ClassURL          CharClass = "url"
	ClassUUID         CharClass = "uuid"
)

// ColumnRule is one entry of a column's rule list: a catalog kind, its
// kind-specific parameters, and the threshold it is evaluated against.
// Params holds one of the *Params types below, or nil for parameterless
// kinds (TypeCheck, NullCheck, Unicity, DateNotFuture, DateNotPast,
// DateWeekday, DateWeekend).
type ColumnRule struct {
	Kind      Kind
	Params    any
	Threshold Threshold
}

// StringLengthParams bounds code-point length. Either bound may be nil.
type StringLengthParams struct {
	Min *int
	Max *int
}

// StringRegexParams holds a pattern compiled by the compiler. Flags is a
// Go regexp inline-flag string (e.g. "i" for case-insensitive), applied as
// `(?flags)pattern` during compilation.
type StringRegexParams struct {
	Pattern string
	Flags   string
}

// StringInSetParams lists the finite set of accepted values.
type StringInSetParams struct {
	Values []string
}

// StringCharClassParams selects one fixed predicate.
type StringCharClassParams struct {
	Class CharClass
}

// NumericRangeParams bounds an Integer or Float column. Either bound may
// be nil.
type NumericRangeParams struct {
	Min *float64
	Max *float64
}

// MonotonicityParams controls pairwise ordering of consecutive non-null
// values in input order.
type MonotonicityParams struct {
	Ascending bool
	Strict    bool
}

// StdDevCheckParams bounds values to within MaxStdDev standard deviations
// of the column mean, computed across all batches.
type StdDevCheckParams struct {
	MaxStdDev float64
}

// MeanVarianceParams bounds the relative deviation from the column mean.
type MeanVarianceParams struct {
	MaxVariancePercent float64
}

// DateBoundParams names a boundary date for DateBefore/DateAfter. An
// unspecified Month defaults to January, an unspecified Day to 1.
type DateBoundParams struct {
	Year  int
	Month *int
	Day   *int
}
