// Package report holds the result model: pure data plus a verdict
// function, no formatting logic (spec §4.6). Human-readable rendering
// lives in the CLI's output collaborator; this package only produces the
// structure and its JSON encoding.
package report

import "encoding/json"

// RuleResult is one rule's outcome against one column or relation.
type RuleResult struct {
	Name       string  `json:"name"`
	Violations int64   `json:"violations"`
	Percent    float64 `json:"percent"`
	Threshold  float64 `json:"threshold"`
	Passed     bool    `json:"passed"`
}

// ColumnResult collects every rule outcome for one column.
type ColumnResult struct {
	Name  string       `json:"name"`
	Rules []RuleResult `json:"rules"`
}

// RelationResult is one cross-column relation's outcome.
type RelationResult struct {
	Name       string  `json:"name"`
	Violations int64   `json:"violations"`
	Percent    float64 `json:"percent"`
	Threshold  float64 `json:"threshold"`
	Passed     bool    `json:"passed"`
}

// Report is one table's validation result (spec §4.6/§6).
type Report struct {
	Table     string           `json:"table"`
	TotalRows int64            `json:"total_rows"`
	Passed    bool             `json:"passed"`
	Columns   []ColumnResult   `json:"columns"`
	Relations []RelationResult `json:"relations"`
}

// Evaluate computes violations/total_rows <= threshold using real
// division; total_rows == 0 always passes (spec §8 property 7, "empty
// input").
func Evaluate(violations, totalRows int64, threshold float64) (percent float64, passed bool) {
	if totalRows == 0 {
		return 0, true
	}
	percent = float64(violations) / float64(totalRows)
	return percent, percent <= threshold
}

// NewRuleResult builds a RuleResult, computing percent and passed via
// Evaluate.
func NewRuleResult(name string, violations, totalRows int64, threshold float64) RuleResult {
	percent, passed := Evaluate(violations, totalRows, threshold)
	return RuleResult{Name: name, Violations: violations, Percent: percent, Threshold: threshold, Passed: passed}
}

// NewRelationResult builds a RelationResult, computing percent and passed
// via Evaluate.
func NewRelationResult(name string, violations, totalRows int64, threshold float64) RelationResult {
	percent, passed := Evaluate(violations, totalRows, threshold)
	return RelationResult{Name: name, Violations: violations, Percent: percent, Threshold: threshold, Passed: passed}
}

// Finalize derives the table-level Passed flag: every column rule and
// every relation must have passed (spec §4.1 Report invariant).
func (r *Report) Finalize() {
	passed := true
	for _, col := range r.Columns {
		for _, rr := range col.Rules {
			if !rr.Passed {
				passed = false
			}
		}
	}
	for _, rel := range r.Relations {
		if !rel.Passed {
			passed = false
		}
	}
	r.Passed = passed
}

// ToJSON renders the report per spec §6's persisted JSON schema.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
