package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrGLeo/dataguard/report"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func sampleReport() *report.Report {
	return &report.Report{
		Table:     "users",
		TotalRows: 10,
		Passed:    false,
		Columns: []report.ColumnResult{
			{Name: "age", Rules: []report.RuleResult{
				{Name: "numeric_range", Violations: 2, Percent: 0.2, Threshold: 0.1, Passed: false},
			}},
		},
		Relations: []report.RelationResult{
			{Name: "date_compare(start,end)", Violations: 0, Percent: 0, Threshold: 0, Passed: true},
		},
	}
}

func TestRenderStdoutBrief(t *testing.T) {
	out := captureStdout(t, func() { renderStdout([]*report.Report{sampleReport()}, true) })
	assert.Equal(t, "users: FAIL\n", out)
}

func TestRenderStdoutFull(t *testing.T) {
	out := captureStdout(t, func() { renderStdout([]*report.Report{sampleReport()}, false) })
	assert.Contains(t, out, "users: FAIL (10 rows)")
	assert.Contains(t, out, "age.numeric_range")
	assert.Contains(t, out, "date_compare(start,end)")
}

func TestPassLabel(t *testing.T) {
	assert.Equal(t, "ok", passLabel(true))
	assert.Equal(t, "FAIL", passLabel(false))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, []*report.Report{sampleReport()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []report.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "users", decoded[0].Table)
}

func TestRenderReportsDispatchesOnOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := renderReports(&options{Output: "json", Path: path}, []*report.Report{sampleReport()})
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	out := captureStdout(t, func() {
		err := renderReports(&options{Output: "stdout", Brief: true}, []*report.Report{sampleReport()})
		require.NoError(t, err)
	})
	assert.Equal(t, "users: FAIL\n", out)
}
