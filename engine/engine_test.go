package engine_test

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrGLeo/dataguard/column"
	"github.com/GrGLeo/dataguard/compile"
	"github.com/GrGLeo/dataguard/engine"
	"github.com/GrGLeo/dataguard/reader"
	"github.com/GrGLeo/dataguard/relation"
)

// fakeReader serves pre-built batches from memory, letting tests control
// exact batch boundaries (needed for cross-batch scenarios like S2/S3)
// without going through a file on disk.
type fakeReader struct {
	schema     []reader.ColumnSchema
	batches    []reader.Batch
	replayable bool
}

func (f *fakeReader) Schema(context.Context) ([]reader.ColumnSchema, error) { return f.schema, nil }

func (f *fakeReader) Replayable() bool { return f.replayable }

func (f *fakeReader) Batches(ctx context.Context, _ reader.Options) (<-chan reader.Batch, <-chan error) {
	batchCh := make(chan reader.Batch)
	errCh := make(chan error, 1)
	go func() {
		defer close(batchCh)
		defer close(errCh)
		for _, b := range f.batches {
			select {
			case batchCh <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return batchCh, errCh
}

func stringArray(values []string, nulls []bool) arrow.Array {
	b := array.NewStringBuilder(memory.NewGoAllocator())
	for i, v := range values {
		if nulls != nil && nulls[i] {
			b.AppendNull()
		} else {
			b.Append(v)
		}
	}
	return b.NewArray()
}

func int64Array(values []int64, nulls []bool) arrow.Array {
	b := array.NewInt64Builder(memory.NewGoAllocator())
	for i, v := range values {
		if nulls != nil && nulls[i] {
			b.AppendNull()
		} else {
			b.Append(v)
		}
	}
	return b.NewArray()
}

func float64Array(values []float64) arrow.Array {
	b := array.NewFloat64Builder(memory.NewGoAllocator())
	for _, v := range values {
		b.Append(v)
	}
	return b.NewArray()
}

func date32Array(values []civil.Date, nulls []bool) arrow.Array {
	b := array.NewDate32Builder(memory.NewGoAllocator())
	epoch := civil.Date{Year: 1970, Month: 1, Day: 1}
	for i, v := range values {
		if nulls != nil && nulls[i] {
			b.AppendNull()
		} else {
			b.Append(arrow.Date32(v.DaysSince(epoch)))
		}
	}
	return b.NewArray()
}

// S1 — length and regex on a 5-row CSV-like string column.
func TestEngineS1_LengthAndRegex(t *testing.T) {
	values := []string{"a@b.co", "ok@x.io", "", "bad", "u@v.w"}
	nulls := []bool{false, false, false, false, false}

	source := []reader.ColumnSchema{{Name: "email", Typed: false}}
	cols := []column.Builder{
		column.StringColumn("email").
			WithMinLength(3).
			WithRegex(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 5, Columns: map[string]arrow.Array{
				"email": stringArray(values, nulls),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)

	col := rpt.Columns[0]
	// untyped source => type_check is prepended ahead of the domain rules.
	require.Len(t, col.Rules, 3)
	assert.Equal(t, int64(0), col.Rules[0].Violations) // type_check: every value parses as a string
	assert.Equal(t, int64(1), col.Rules[1].Violations) // string_length: only ""
	assert.Equal(t, int64(2), col.Rules[2].Violations) // string_regex: "" and "bad"
	assert.False(t, rpt.Passed)
}

// S2 — uniqueness across batches.
func TestEngineS2_UniquenessAcrossBatches(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "id", Type: 1, Typed: true}}
	cols := []column.Builder{column.IntegerColumn("id").IsUnique()}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 3, Columns: map[string]arrow.Array{"id": int64Array([]int64{1, 2, 3}, nil)}},
			{StartRow: 3, RowCount: 3, Columns: map[string]arrow.Array{"id": int64Array([]int64{2, 4, 1}, nil)}},
			{StartRow: 6, RowCount: 1, Columns: map[string]arrow.Array{"id": int64Array([]int64{5}, nil)}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rpt.Columns[0].Rules[0].Violations)
	assert.Equal(t, int64(7), rpt.TotalRows)
}

// S3 — monotonicity over nulls, spanning batch boundaries.
func TestEngineS3_MonotonicityOverNulls(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "seq", Type: 1, Typed: true}}
	cols := []column.Builder{column.IntegerColumn("seq").IsAscending(false)}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	// values: [1, null, 3, 2, null, 4] split across two batches
	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 3, Columns: map[string]arrow.Array{
				"seq": int64Array([]int64{1, 0, 3}, []bool{false, true, false}),
			}},
			{StartRow: 3, RowCount: 3, Columns: map[string]arrow.Array{
				"seq": int64Array([]int64{2, 0, 4}, []bool{false, true, false}),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rpt.Columns[0].Rules[0].Violations)
	assert.False(t, rpt.Passed)
}

// S4 — date relation.
func TestEngineS4_DateRelation(t *testing.T) {
	start := []civil.Date{{Year: 2023, Month: 1, Day: 1}, {Year: 2023, Month: 6, Day: 1}, {Year: 2023, Month: 7, Day: 1}}
	end := []civil.Date{{Year: 2023, Month: 2, Day: 1}, {Year: 2023, Month: 5, Day: 1}, {}}
	endNulls := []bool{false, false, true}

	source := []reader.ColumnSchema{{Name: "start", Type: 3, Typed: true}, {Name: "end", Type: 3, Typed: true}}
	cols := []column.Builder{column.DateColumn("start", ""), column.DateColumn("end", "")}
	rels := []relation.Spec{relation.DateCompare("start", "end", relation.LT).WithThreshold(0.7)}
	plan, err := compile.Compile("t", source, cols, rels)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 3, Columns: map[string]arrow.Array{
				"start": date32Array(start, nil),
				"end":   date32Array(end, endNulls),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	require.Len(t, rpt.Relations, 1)
	assert.Equal(t, int64(2), rpt.Relations[0].Violations)
	assert.True(t, rpt.Passed) // 2/3 <= 0.7
}

// S5 — StdDevCheck two-pass.
func TestEngineS5_StdDevCheckTwoPass(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "x", Type: 2, Typed: true}}
	cols := []column.Builder{column.FloatColumn("x").WithMaxStdDev(2.0)}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 5, Columns: map[string]arrow.Array{
				"x": float64Array([]float64{10, 10, 10, 10, 1000}),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rpt.Columns[0].Rules[0].Violations)
	assert.True(t, rpt.Passed)
}

// S5b — same scenario but via a non-replayable reader, exercising the
// buffered fallback path instead of the re-read pass 2.
func TestEngineS5_StdDevCheckNonReplayable(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "x", Type: 2, Typed: true}}
	cols := []column.Builder{column.FloatColumn("x").WithMaxStdDev(2.0)}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: false,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 5, Columns: map[string]arrow.Array{
				"x": float64Array([]float64{10, 10, 10, 10, 1000}),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rpt.Columns[0].Rules[0].Violations)
}

// S6 — TypeCheck masks downstream rules.
func TestEngineS6_TypeCheckMasksDownstream(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "age", Typed: false}}
	cols := []column.Builder{column.IntegerColumn("age").WithRange(0, 120)}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{
		schema:     source,
		replayable: true,
		batches: []reader.Batch{
			{StartRow: 0, RowCount: 3, Columns: map[string]arrow.Array{
				"age": stringArray([]string{"30", "x", "5"}, nil),
			}},
		},
	}

	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)

	col := rpt.Columns[0]
	require.Len(t, col.Rules, 2) // type_check, numeric_range
	assert.Equal(t, int64(1), col.Rules[0].Violations)
	assert.Equal(t, int64(0), col.Rules[1].Violations)
}

func TestEngineEmptyInputAlwaysPasses(t *testing.T) {
	source := []reader.ColumnSchema{{Name: "x", Type: 1, Typed: true}}
	cols := []column.Builder{column.IntegerColumn("x").WithMin(0).Threshold(0)}
	plan, err := compile.Compile("t", source, cols, nil)
	require.NoError(t, err)

	r := &fakeReader{schema: source, replayable: true}
	rpt, err := engine.Run(context.Background(), plan, r, engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rpt.TotalRows)
	assert.True(t, rpt.Passed)
}
