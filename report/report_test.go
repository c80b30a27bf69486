package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GrGLeo/dataguard/report"
)

func TestEvaluateEmptyInputAlwaysPasses(t *testing.T) {
	percent, passed := report.Evaluate(0, 0, 0)
	assert.Equal(t, 0.0, percent)
	assert.True(t, passed)
}

func TestEvaluateThresholdIsLax(t *testing.T) {
	// 2/7 == threshold exactly: lax (<=) boundary passes (spec §9 open
	// question (b)).
	_, passed := report.Evaluate(2, 7, 2.0/7.0)
	assert.True(t, passed)

	_, passed = report.Evaluate(2, 7, 2.0/7.0-0.0001)
	assert.False(t, passed)
}

func TestFinalizeFailsIfAnyRuleFails(t *testing.T) {
	r := &report.Report{
		Columns: []report.ColumnResult{
			{Name: "a", Rules: []report.RuleResult{{Name: "x", Passed: true}}},
			{Name: "b", Rules: []report.RuleResult{{Name: "y", Passed: false}}},
		},
	}
	r.Finalize()
	assert.False(t, r.Passed)
}

func TestFinalizePassesWhenEverythingPasses(t *testing.T) {
	r := &report.Report{
		Columns: []report.ColumnResult{
			{Name: "a", Rules: []report.RuleResult{{Name: "x", Passed: true}}},
		},
		Relations: []report.RelationResult{{Name: "rel", Passed: true}},
	}
	r.Finalize()
	assert.True(t, r.Passed)
}

func TestToJSONRoundtripsSchema(t *testing.T) {
	r := &report.Report{Table: "t", TotalRows: 3, Passed: true}
	data, err := r.ToJSON()
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"table": "t"`)
	assert.Contains(t, string(data), `"total_rows": 3`)
}
