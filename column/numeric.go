package column

import "github.com/GrGLeo/dataguard/rule"

// IntegerBuilder assembles rules for an Integer column.
type IntegerBuilder struct {
	spec Spec
}

// IntegerColumn starts a builder chain for an Integer column named name.
func IntegerColumn(name string) *IntegerBuilder {
	return &IntegerBuilder{spec: Spec{Name: name, Type: rule.Integer}}
}

func (b *IntegerBuilder) Build() *Spec { return &b.spec }

func (b *IntegerBuilder) Threshold(t rule.Threshold) *IntegerBuilder {
	b.spec.Rules = withThreshold(b.spec.Rules, t)
	return b
}

// WithMin requires value >= min.
func (b *IntegerBuilder) WithMin(min float64) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Min: &min})
	return b
}

// WithMax requires value <= max.
func (b *IntegerBuilder) WithMax(max float64) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Max: &max})
	return b
}

// WithRange requires min <= value <= max.
func (b *IntegerBuilder) WithRange(min, max float64) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Min: &min, Max: &max})
	return b
}

// IsAscending requires consecutive non-null values to be non-decreasing
// (or strictly increasing, if strict is true) in input order.
func (b *IntegerBuilder) IsAscending(strict bool) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: true, Strict: strict})
	return b
}

// IsDescending requires consecutive non-null values to be non-increasing
// (or strictly decreasing, if strict is true) in input order.
func (b *IntegerBuilder) IsDescending(strict bool) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: false, Strict: strict})
	return b
}

// WithMaxStdDev requires each value to lie within max standard deviations
// of the column mean, computed across all batches.
func (b *IntegerBuilder) WithMaxStdDev(max float64) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStdDevCheck, rule.StdDevCheckParams{MaxStdDev: max})
	return b
}

// WithMaxVariancePercent requires |value-mean|/|mean| <= percent.
func (b *IntegerBuilder) WithMaxVariancePercent(percent float64) *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMeanVariance, rule.MeanVarianceParams{MaxVariancePercent: percent})
	return b
}

func (b *IntegerBuilder) IsNotNull() *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNullCheck, nil)
	return b
}

func (b *IntegerBuilder) IsUnique() *IntegerBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindUnicity, nil)
	return b
}

// FloatBuilder assembles rules for a Float column.
type FloatBuilder struct {
	spec Spec
}

// FloatColumn starts a builder chain for a Float column named name.
func FloatColumn(name string) *FloatBuilder {
	return &FloatBuilder{spec: Spec{Name: name, Type: rule.Float}}
}

func (b *FloatBuilder) Build() *Spec { return &b.spec }

func (b *FloatBuilder) Threshold(t rule.Threshold) *FloatBuilder {
	b.spec.Rules = withThreshold(b.spec.Rules, t)
	return b
}

func (b *FloatBuilder) WithMin(min float64) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Min: &min})
	return b
}

func (b *FloatBuilder) WithMax(max float64) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Max: &max})
	return b
}

func (b *FloatBuilder) WithRange(min, max float64) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNumericRange, rule.NumericRangeParams{Min: &min, Max: &max})
	return b
}

func (b *FloatBuilder) IsAscending(strict bool) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: true, Strict: strict})
	return b
}

func (b *FloatBuilder) IsDescending(strict bool) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMonotonicity, rule.MonotonicityParams{Ascending: false, Strict: strict})
	return b
}

func (b *FloatBuilder) WithMaxStdDev(max float64) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStdDevCheck, rule.StdDevCheckParams{MaxStdDev: max})
	return b
}

func (b *FloatBuilder) WithMaxVariancePercent(percent float64) *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindMeanVariance, rule.MeanVarianceParams{MaxVariancePercent: percent})
	return b
}

func (b *FloatBuilder) IsNotNull() *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNullCheck, nil)
	return b
}

func (b *FloatBuilder) IsUnique() *FloatBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindUnicity, nil)
	return b
}
