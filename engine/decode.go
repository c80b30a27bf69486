package engine

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/compile"
	"github.com/GrGLeo/dataguard/rule"
)

// epoch is the arrow DATE32 reference date: days since the Unix epoch.
var epoch = civil.Date{Year: 1970, Month: 1, Day: 1}

// decoded is the per-row result of decoding one column's arrow array
// against its compiled plan: a typed value plus a skip flag. skip is true
// for rows the engine must not hand to domain/monotonicity/stats/unicity
// rules, because either the source value was null or (for untyped sources)
// it failed TypeCheck — both are counted separately and never reach
// downstream rules (spec §4.4 "TypeCheck failure... causes downstream
// domain rules to skip that value").
type decoded struct {
	values              []any
	skip                []bool
	nullViolations      int64
	typeCheckViolations int64
}

// decodeColumn converts one batch's arrow array for a column into typed
// Go values per the column's compiled plan.
func decodeColumn(cp *compile.ColumnPlan, arr arrow.Array) decoded {
	n := arr.Len()
	out := decoded{values: make([]any, n), skip: make([]bool, n)}

	if cp.SourceTyped {
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				out.skip[i] = true
				out.nullViolations++
				continue
			}
			out.values[i] = typedValue(cp.DeclaredType, arr, i)
		}
		return out
	}

	strArr := arr.(*array.String)
	for i := 0; i < n; i++ {
		if strArr.IsNull(i) {
			out.skip[i] = true
			out.nullViolations++
			continue
		}
		raw := strArr.Value(i)
		v, ok := compile.ParseValue(cp.DeclaredType, cp.DateFormat, raw)
		if !ok {
			out.skip[i] = true
			out.typeCheckViolations++
			continue
		}
		out.values[i] = v
	}
	return out
}

// typedValue extracts row i of a typed (Parquet-sourced) array as the Go
// representation the compiled rules expect: int64, float64, string, or
// civil.Date.
func typedValue(t rule.ColumnType, arr arrow.Array, i int) any {
	switch t {
	case rule.Integer:
		return arr.(*array.Int64).Value(i)
	case rule.Float:
		return arr.(*array.Float64).Value(i)
	case rule.Date:
		days := int(arr.(*array.Date32).Value(i))
		return epoch.AddDays(days)
	default: // rule.String
		return arr.(*array.String).Value(i)
	}
}

// asFloat64 extracts a plain float64 out of a decoded Integer or Float
// value, for use by Unicity canonicalization-independent consumers such as
// the stats accumulator.
func asFloat64(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
