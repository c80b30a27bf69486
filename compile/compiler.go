// Package compile translates a declarative column/relation description
// into an ExecutablePlan: per-column executable rule chains with their
// artefacts (compiled regexes, hash sets, typed bounds) already prepared,
// plus an explicit TypeCheck for untyped sources. See spec §4.3.
package compile

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/charclass"
	"github.com/GrGLeo/dataguard/column"
	"github.com/GrGLeo/dataguard/reader"
	"github.com/GrGLeo/dataguard/relation"
	"github.com/GrGLeo/dataguard/rule"
)

// Compile turns a set of column builders plus cross-column relations into
// an ExecutablePlan. source describes, per column name, whether the reader
// already yields a typed array for it (Parquet) or raw strings (CSV).
func Compile(tableName string, source []reader.ColumnSchema, columns []column.Builder, relations []relation.Spec) (*ExecutablePlan, error) {
	sourceByName := make(map[string]reader.ColumnSchema, len(source))
	for _, s := range source {
		sourceByName[s.Name] = s
	}

	plan := &ExecutablePlan{TableName: tableName}
	declaredTypes := make(map[string]rule.ColumnType, len(columns))

	for _, builder := range columns {
		spec := builder.Build()
		colPlan, err := compileColumn(spec, sourceByName)
		if err != nil {
			return nil, err
		}
		plan.Columns = append(plan.Columns, colPlan)
		declaredTypes[spec.Name] = spec.Type
	}

	for _, rel := range relations {
		relPlan, err := compileRelation(rel, declaredTypes)
		if err != nil {
			return nil, err
		}
		plan.Relations = append(plan.Relations, relPlan)
	}

	return plan, nil
}

func compileColumn(spec *column.Spec, source map[string]reader.ColumnSchema) (*ColumnPlan, error) {
	src, inSource := source[spec.Name]
	colPlan := &ColumnPlan{
		Name:         spec.Name,
		DeclaredType: spec.Type,
		SourceTyped:  inSource && src.Typed,
		DateFormat:   spec.Format,
	}

	if inSource && src.Typed && src.Type != spec.Type {
		return nil, schemaMismatch(spec.Name, fmt.Sprintf("declared as %s but source provides %s", spec.Type, src.Type))
	}

	// Step 2: TypeCheck insertion (spec §4.3 step 2).
	if !colPlan.SourceTyped {
		colPlan.TypeCheck = &StatelessRule{Kind: rule.KindTypeCheck, Threshold: rule.DefaultThreshold}
	}

	haveNullCheck := false
	haveUnicity := false

	// Step 1: rule partition, in declaration order (spec §4.3 step 1, 4).
	for _, r := range spec.Rules {
		if err := r.Threshold.Validate(); err != nil {
			return nil, invalidParameter(spec.Name, r.Kind, err.Error(), err)
		}
		if !r.Kind.AppliesTo(spec.Type) {
			return nil, incompatibleRule(spec.Name, r.Kind, spec.Type)
		}

		switch r.Kind {
		case rule.KindNullCheck:
			if !haveNullCheck {
				colPlan.NullCheck = &StatelessRule{Kind: rule.KindNullCheck, Threshold: r.Threshold}
				haveNullCheck = true
			}
		case rule.KindUnicity:
			if !haveUnicity {
				u, err := compileUnicity(spec, r)
				if err != nil {
					return nil, err
				}
				colPlan.Unicity = u
				haveUnicity = true
			}
		case rule.KindMonotonicity:
			m, err := compileMonotonicity(spec, r)
			if err != nil {
				return nil, err
			}
			colPlan.Mono = append(colPlan.Mono, m)
		case rule.KindStdDevCheck, rule.KindMeanVariance:
			s, err := compileStatRule(spec, r)
			if err != nil {
				return nil, err
			}
			colPlan.Stats = append(colPlan.Stats, s)
		default:
			s, err := compileDomainRule(spec, r)
			if err != nil {
				return nil, err
			}
			colPlan.Domain = append(colPlan.Domain, s)
		}
	}

	return colPlan, nil
}

func compileDomainRule(spec *column.Spec, r rule.ColumnRule) (*StatelessRule, error) {
	switch r.Kind {
	case rule.KindStringLength:
		p, ok := r.Params.(rule.StringLengthParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		if p.Min == nil && p.Max == nil {
			return nil, invalidParameter(spec.Name, r.Kind, "at least one of min/max is required", nil)
		}
		if p.Min != nil && *p.Min < 0 {
			return nil, invalidParameter(spec.Name, r.Kind, "min must be >= 0", nil)
		}
		if p.Max != nil && *p.Max < 0 {
			return nil, invalidParameter(spec.Name, r.Kind, "max must be >= 0", nil)
		}
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return nil, invalidParameter(spec.Name, r.Kind, "min must be <= max", nil)
		}
		min, max := p.Min, p.Max
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			n := utf8.RuneCountInString(v.(string))
			if min != nil && n < *min {
				return true
			}
			if max != nil && n > *max {
				return true
			}
			return false
		}}, nil

	case rule.KindStringRegex:
		p, ok := r.Params.(rule.StringRegexParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		pattern := p.Pattern
		if p.Flags != "" {
			pattern = "(?" + p.Flags + ")" + pattern
		}
		// Full-match per spec §9: user-supplied anchors remain
		// semantically equivalent once wrapped.
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, regexCompileError(spec.Name, r.Kind, err)
		}
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			return !re.MatchString(v.(string))
		}}, nil

	case rule.KindStringInSet:
		p, ok := r.Params.(rule.StringInSetParams)
		if !ok || len(p.Values) == 0 {
			return nil, invalidParameter(spec.Name, r.Kind, "values must be non-empty", nil)
		}
		set := make(map[string]struct{}, len(p.Values))
		for _, v := range p.Values {
			set[v] = struct{}{}
		}
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			_, ok := set[v.(string)]
			return !ok
		}}, nil

	case rule.KindStringCharClass:
		p, ok := r.Params.(rule.StringCharClassParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		pred := charclass.Predicate(p.Class)
		if pred == nil {
			return nil, invalidParameter(spec.Name, r.Kind, fmt.Sprintf("unknown char class %q", p.Class), nil)
		}
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			return !pred(v.(string))
		}}, nil

	case rule.KindNumericRange:
		p, ok := r.Params.(rule.NumericRangeParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		if p.Min == nil && p.Max == nil {
			return nil, invalidParameter(spec.Name, r.Kind, "at least one of min/max is required", nil)
		}
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return nil, invalidParameter(spec.Name, r.Kind, "min must be <= max", nil)
		}
		min, max := p.Min, p.Max
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			f := asFloat(v)
			if math.IsNaN(f) {
				return true
			}
			if min != nil && f < *min {
				return true
			}
			if max != nil && f > *max {
				return true
			}
			return false
		}}, nil

	case rule.KindDateBefore, rule.KindDateAfter:
		p, ok := r.Params.(rule.DateBoundParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		month := 1
		if p.Month != nil {
			if *p.Month < 1 || *p.Month > 12 {
				return nil, invalidParameter(spec.Name, r.Kind, "month must be in [1, 12]", nil)
			}
			month = *p.Month
		}
		day := 1
		if p.Day != nil {
			if *p.Day < 1 || *p.Day > 31 {
				return nil, invalidParameter(spec.Name, r.Kind, "day must be in [1, 31]", nil)
			}
			day = *p.Day
		}
		bound := civil.Date{Year: p.Year, Month: civil.Month(month), Day: day}
		if r.Kind == rule.KindDateBefore {
			return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
				return !v.(civil.Date).Before(bound)
			}}, nil
		}
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			return !v.(civil.Date).After(bound)
		}}, nil

	case rule.KindDateNotFuture:
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, ctx *EvalContext) bool {
			return v.(civil.Date).After(ctx.Today)
		}}, nil

	case rule.KindDateNotPast:
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, ctx *EvalContext) bool {
			return v.(civil.Date).Before(ctx.Today)
		}}, nil

	case rule.KindDateWeekday:
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			wd := civilWeekday(v.(civil.Date))
			return wd == 6 || wd == 0
		}}, nil

	case rule.KindDateWeekend:
		return &StatelessRule{Kind: r.Kind, Threshold: r.Threshold, Violates: func(v any, _ *EvalContext) bool {
			wd := civilWeekday(v.(civil.Date))
			return wd != 6 && wd != 0
		}}, nil

	default:
		return nil, invalidParameter(spec.Name, r.Kind, "unknown rule kind", nil)
	}
}

func compileMonotonicity(spec *column.Spec, r rule.ColumnRule) (*MonotonicityRule, error) {
	p, ok := r.Params.(rule.MonotonicityParams)
	if !ok {
		return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
	}
	less, err := lessFor(spec.Type)
	if err != nil {
		return nil, invalidParameter(spec.Name, r.Kind, err.Error(), err)
	}
	return &MonotonicityRule{Kind: r.Kind, Threshold: r.Threshold, Ascending: p.Ascending, Strict: p.Strict, Less: less}, nil
}

func compileStatRule(spec *column.Spec, r rule.ColumnRule) (*StatRule, error) {
	switch r.Kind {
	case rule.KindStdDevCheck:
		p, ok := r.Params.(rule.StdDevCheckParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		if p.MaxStdDev < 0 {
			return nil, invalidParameter(spec.Name, r.Kind, "max_std_dev must be >= 0", nil)
		}
		return &StatRule{Kind: r.Kind, Threshold: r.Threshold, MaxStdDev: p.MaxStdDev}, nil
	case rule.KindMeanVariance:
		p, ok := r.Params.(rule.MeanVarianceParams)
		if !ok {
			return nil, invalidParameter(spec.Name, r.Kind, "missing parameters", nil)
		}
		if p.MaxVariancePercent < 0 {
			return nil, invalidParameter(spec.Name, r.Kind, "max_variance_percent must be >= 0", nil)
		}
		return &StatRule{Kind: r.Kind, Threshold: r.Threshold, MaxVariancePercent: p.MaxVariancePercent}, nil
	default:
		return nil, invalidParameter(spec.Name, r.Kind, "unknown stat rule kind", nil)
	}
}

func compileUnicity(spec *column.Spec, r rule.ColumnRule) (*UnicityRule, error) {
	switch spec.Type {
	case rule.String:
		return &UnicityRule{Kind: r.Kind, Threshold: r.Threshold, Canon: func(v any) any { return v.(string) }}, nil
	case rule.Integer:
		return &UnicityRule{Kind: r.Kind, Threshold: r.Threshold, Canon: func(v any) any { return v.(int64) }}, nil
	case rule.Float:
		return &UnicityRule{Kind: r.Kind, Threshold: r.Threshold, Canon: func(v any) any { return canonicalFloat(v.(float64)) }}, nil
	case rule.Date:
		return &UnicityRule{Kind: r.Kind, Threshold: r.Threshold, Canon: func(v any) any { return dayNumber(v.(civil.Date)) }}, nil
	default:
		return nil, invalidParameter(spec.Name, r.Kind, "unsupported column type", nil)
	}
}

func compileRelation(rel relation.Spec, declared map[string]rule.ColumnType) (*RelationPlan, error) {
	if err := rel.Threshold.Validate(); err != nil {
		return nil, invalidParameter("", "", err.Error(), err)
	}
	leftType, ok := declared[rel.Left]
	if !ok {
		return nil, unknownColumn(rel.Left)
	}
	rightType, ok := declared[rel.Right]
	if !ok {
		return nil, unknownColumn(rel.Right)
	}

	switch rel.Kind {
	case relation.KindDateCompare:
		if leftType != rule.Date || rightType != rule.Date {
			return nil, invalidParameter(rel.Left, "", "date_compare requires two Date columns", nil)
		}
	case relation.KindNumericCompare:
		if !isNumeric(leftType) || !isNumeric(rightType) {
			return nil, invalidParameter(rel.Left, "", "numeric_compare requires two Integer/Float columns", nil)
		}
	default:
		return nil, invalidParameter(rel.Left, "", fmt.Sprintf("unknown relation kind %q", rel.Kind), nil)
	}

	return &RelationPlan{Kind: rel.Kind, Left: rel.Left, Right: rel.Right, Op: rel.Op, Threshold: rel.Threshold}, nil
}

func isNumeric(t rule.ColumnType) bool { return t == rule.Integer || t == rule.Float }

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return math.NaN()
	}
}

// canonicalFloat returns a value safe to use as a Unicity map key. NaN is
// mapped to a sentinel string rather than returned as float64(NaN): Go map
// keys compare with ==, under which NaN never equals itself, so every NaN
// would otherwise look distinct. -0.0 canonicalizes to +0.0.
func canonicalFloat(f float64) any {
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == 0 {
		return float64(0)
	}
	return f
}

func lessFor(t rule.ColumnType) (func(a, b any) bool, error) {
	switch t {
	case rule.Integer:
		return func(a, b any) bool { return a.(int64) < b.(int64) }, nil
	case rule.Float:
		return func(a, b any) bool { return a.(float64) < b.(float64) }, nil
	case rule.Date:
		return func(a, b any) bool { return a.(civil.Date).Before(b.(civil.Date)) }, nil
	default:
		return nil, fmt.Errorf("monotonicity does not apply to %s", t)
	}
}

// civilWeekday returns the day of week in time.Weekday numbering
// (0 = Sunday ... 6 = Saturday), via the proleptic Gregorian day count.
func civilWeekday(d civil.Date) int {
	days := d.DaysSince(civil.Date{Year: 1970, Month: 1, Day: 1})
	// 1970-01-01 was a Thursday (weekday 4).
	wd := (int(days%7) + 4) % 7
	if wd < 0 {
		wd += 7
	}
	return wd
}
