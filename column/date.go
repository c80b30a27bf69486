package column

import "github.com/GrGLeo/dataguard/rule"

// DefaultDateFormat is used when DateColumn is given an empty format: ISO
// 8601 calendar dates, Go's reference-time layout for "2006-01-02".
const DefaultDateFormat = "2006-01-02"

// DateBuilder assembles rules for a Date column.
type DateBuilder struct {
	spec Spec
}

// DateColumn starts a builder chain for a Date column named name. format
// is a time.Parse-style layout used to parse the column out of raw CSV
// text (Parquet sources ignore it, since their date columns already carry
// a typed value); an empty format defaults to DefaultDateFormat.
func DateColumn(name, format string) *DateBuilder {
	if format == "" {
		format = DefaultDateFormat
	}
	return &DateBuilder{spec: Spec{Name: name, Type: rule.Date, Format: format}}
}

func (b *DateBuilder) Build() *Spec { return &b.spec }

func (b *DateBuilder) Threshold(t rule.Threshold) *DateBuilder {
	b.spec.Rules = withThreshold(b.spec.Rules, t)
	return b
}

// Before requires the value to be strictly before year-month-day. An
// unspecified month defaults to January, an unspecified day to 1.
func (b *DateBuilder) Before(year int, month, day *int) *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateBefore, rule.DateBoundParams{Year: year, Month: month, Day: day})
	return b
}

// After requires the value to be strictly after year-month-day.
func (b *DateBuilder) After(year int, month, day *int) *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateAfter, rule.DateBoundParams{Year: year, Month: month, Day: day})
	return b
}

// NotFuture requires the value not to be after the engine's `today` input.
func (b *DateBuilder) NotFuture() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateNotFuture, nil)
	return b
}

// NotPast requires the value not to be before the engine's `today` input.
func (b *DateBuilder) NotPast() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateNotPast, nil)
	return b
}

// IsWeekday requires an ISO Monday-Friday day of week.
func (b *DateBuilder) IsWeekday() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateWeekday, nil)
	return b
}

// IsWeekend requires an ISO Saturday-Sunday day of week.
func (b *DateBuilder) IsWeekend() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindDateWeekend, nil)
	return b
}

// IsAscending requires consecutive non-null values to be non-decreasing
// (or strictly increasing, if strict is true) in input order.
func (b *DateBuilder) IsAscending(strict bool) *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: true, Strict: strict})
	return b
}

// IsDescending requires consecutive non-null values to be non-increasing
// (or strictly decreasing, if strict is true) in input order.
func (b *DateBuilder) IsDescending(strict bool) *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: false, Strict: strict})
	return b
}

func (b *DateBuilder) IsNotNull() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNullCheck, nil)
	return b
}

func (b *DateBuilder) IsUnique() *DateBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindUnicity, nil)
	return b
}
