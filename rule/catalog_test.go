package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GrGLeo/dataguard/rule"
)

func TestKindAppliesTo(t *testing.T) {
	cases := []struct {
		kind    rule.Kind
		colType rule.ColumnType
		want    bool
	}{
		{rule.KindStringLength, rule.String, true},
		{rule.KindStringLength, rule.Integer, false},
		{rule.KindNumericRange, rule.Integer, true},
		{rule.KindNumericRange, rule.Date, false},
		{rule.KindMonotonicity, rule.Date, true},
		{rule.KindMonotonicity, rule.String, false},
		{rule.KindDateWeekend, rule.Date, true},
		{rule.KindTypeCheck, rule.String, true},
		{rule.KindNullCheck, rule.Integer, true},
		{rule.KindUnicity, rule.Date, true},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.kind.AppliesTo(c.colType), "%s applies to %s", c.kind, c.colType)
	}
}

func TestIsStatRule(t *testing.T) {
	assert.True(t, rule.KindStdDevCheck.IsStatRule())
	assert.True(t, rule.KindMeanVariance.IsStatRule())
	assert.False(t, rule.KindNumericRange.IsStatRule())
}

func TestIsCrossBatch(t *testing.T) {
	assert.True(t, rule.KindUnicity.IsCrossBatch())
	assert.True(t, rule.KindStdDevCheck.IsCrossBatch())
	assert.False(t, rule.KindStringLength.IsCrossBatch())
}

func TestThresholdValidate(t *testing.T) {
	assert.NoError(t, rule.Threshold(0).Validate())
	assert.NoError(t, rule.Threshold(1).Validate())
	assert.Error(t, rule.Threshold(-0.1).Validate())
	assert.Error(t, rule.Threshold(1.1).Validate())
}
