package config

import (
	"fmt"

	"github.com/GrGLeo/dataguard/column"
	"github.com/GrGLeo/dataguard/relation"
	"github.com/GrGLeo/dataguard/rule"
)

func (cc ColumnConfig) toColumnSpec() (*column.Spec, error) {
	t, err := parseColumnType(cc.Datatype)
	if err != nil {
		return nil, err
	}
	if t == rule.Date && cc.DateFormat == "" {
		return nil, fmt.Errorf("date_format is required for datatype \"date\"")
	}

	spec := &column.Spec{Name: cc.Name, Type: t, Format: cc.DateFormat}
	for _, rc := range cc.Rule {
		cr, err := rc.toColumnRule()
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rc.Name, err)
		}
		spec.Rules = append(spec.Rules, cr)
	}
	return spec, nil
}

func (rc RuleConfig) threshold() rule.Threshold {
	if rc.Threshold == nil {
		return rule.DefaultThreshold
	}
	return rule.Threshold(*rc.Threshold)
}

// toColumnRule translates one `[[table.column.rule]]` block into a
// rule.ColumnRule. name follows spec §6's catalog convention of naming
// rules after the column.Builder method that produces them (e.g.
// "with_min_length"), rather than the coarser internal rule.Kind a given
// method maps to — the compiler checks applicability against declaredType
// once the column is compiled.
func (rc RuleConfig) toColumnRule() (rule.ColumnRule, error) {
	threshold := rc.threshold()

	switch rc.Name {
	case "with_min_length":
		return rule.ColumnRule{Kind: rule.KindStringLength, Threshold: threshold, Params: rule.StringLengthParams{Min: intPtr(rc.Min)}}, nil
	case "with_max_length":
		return rule.ColumnRule{Kind: rule.KindStringLength, Threshold: threshold, Params: rule.StringLengthParams{Max: intPtr(rc.Max)}}, nil
	case "with_length":
		return rule.ColumnRule{Kind: rule.KindStringLength, Threshold: threshold, Params: rule.StringLengthParams{Min: intPtr(rc.Min), Max: intPtr(rc.Max)}}, nil

	case "with_regex":
		return rule.ColumnRule{Kind: rule.KindStringRegex, Threshold: threshold, Params: rule.StringRegexParams{Pattern: rc.Regex, Flags: rc.Flags}}, nil

	case "in_set":
		return rule.ColumnRule{Kind: rule.KindStringInSet, Threshold: threshold, Params: rule.StringInSetParams{Values: rc.Values}}, nil

	case "is_numeric":
		return charClassRule(threshold, rule.ClassNumeric), nil
	case "is_alpha":
		return charClassRule(threshold, rule.ClassAlpha), nil
	case "is_alphanumeric":
		return charClassRule(threshold, rule.ClassAlphanumeric), nil
	case "is_lowercase":
		return charClassRule(threshold, rule.ClassLowercase), nil
	case "is_uppercase":
		return charClassRule(threshold, rule.ClassUppercase), nil
	case "is_email":
		return charClassRule(threshold, rule.ClassEmail), nil
	case "is_url":
		return charClassRule(threshold, rule.ClassURL), nil
	case "is_uuid":
		return charClassRule(threshold, rule.ClassUUID), nil

	case "with_min":
		return rule.ColumnRule{Kind: rule.KindNumericRange, Threshold: threshold, Params: rule.NumericRangeParams{Min: rc.Min}}, nil
	case "with_max":
		return rule.ColumnRule{Kind: rule.KindNumericRange, Threshold: threshold, Params: rule.NumericRangeParams{Max: rc.Max}}, nil
	case "with_range":
		return rule.ColumnRule{Kind: rule.KindNumericRange, Threshold: threshold, Params: rule.NumericRangeParams{Min: rc.Min, Max: rc.Max}}, nil

	case "is_ascending":
		return rule.ColumnRule{Kind: rule.KindMonotonicity, Threshold: threshold, Params: rule.MonotonicityParams{Ascending: true, Strict: rc.Strict}}, nil
	case "is_descending":
		return rule.ColumnRule{Kind: rule.KindMonotonicity, Threshold: threshold, Params: rule.MonotonicityParams{Ascending: false, Strict: rc.Strict}}, nil

	case "with_max_std_dev":
		return rule.ColumnRule{Kind: rule.KindStdDevCheck, Threshold: threshold, Params: rule.StdDevCheckParams{MaxStdDev: rc.MaxStdDev}}, nil
	case "with_max_variance_percent":
		return rule.ColumnRule{Kind: rule.KindMeanVariance, Threshold: threshold, Params: rule.MeanVarianceParams{MaxVariancePercent: rc.MaxVariancePercent}}, nil

	case "before":
		if rc.Year == nil {
			return rule.ColumnRule{}, fmt.Errorf("before requires year")
		}
		return rule.ColumnRule{Kind: rule.KindDateBefore, Threshold: threshold, Params: rule.DateBoundParams{Year: *rc.Year, Month: rc.Month, Day: rc.Day}}, nil
	case "after":
		if rc.Year == nil {
			return rule.ColumnRule{}, fmt.Errorf("after requires year")
		}
		return rule.ColumnRule{Kind: rule.KindDateAfter, Threshold: threshold, Params: rule.DateBoundParams{Year: *rc.Year, Month: rc.Month, Day: rc.Day}}, nil
	case "not_future":
		return rule.ColumnRule{Kind: rule.KindDateNotFuture, Threshold: threshold}, nil
	case "not_past":
		return rule.ColumnRule{Kind: rule.KindDateNotPast, Threshold: threshold}, nil
	case "is_weekday":
		return rule.ColumnRule{Kind: rule.KindDateWeekday, Threshold: threshold}, nil
	case "is_weekend":
		return rule.ColumnRule{Kind: rule.KindDateWeekend, Threshold: threshold}, nil

	case "is_not_null":
		return rule.ColumnRule{Kind: rule.KindNullCheck, Threshold: threshold}, nil
	case "is_unique":
		return rule.ColumnRule{Kind: rule.KindUnicity, Threshold: threshold}, nil

	default:
		return rule.ColumnRule{}, fmt.Errorf("unknown rule name %q", rc.Name)
	}
}

func charClassRule(threshold rule.Threshold, class rule.CharClass) rule.ColumnRule {
	return rule.ColumnRule{Kind: rule.KindStringCharClass, Threshold: threshold, Params: rule.StringCharClassParams{Class: class}}
}

func (rc RelationConfig) toRelationSpec() (relation.Spec, error) {
	var threshold rule.Threshold
	if rc.Threshold != nil {
		threshold = rule.Threshold(*rc.Threshold)
	}

	switch rc.Kind {
	case string(relation.KindDateCompare):
		return relation.DateCompare(rc.Left, rc.Right, relation.Op(rc.Op)).WithThreshold(threshold), nil
	case string(relation.KindNumericCompare):
		return relation.NumericCompare(rc.Left, rc.Right, relation.Op(rc.Op)).WithThreshold(threshold), nil
	default:
		return relation.Spec{}, fmt.Errorf("unknown relation kind %q", rc.Kind)
	}
}

func intPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
