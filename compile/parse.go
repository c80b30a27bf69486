package compile

import (
	"strconv"
	"time"

	"github.com/golang-sql/civil"

	"github.com/GrGLeo/dataguard/rule"
)

// ParseValue attempts to parse a raw CSV string into the column's declared
// type. It is the TypeCheck evaluator: ok is false iff the string is not a
// valid instance of declaredType, in which case the engine counts one
// TypeCheck violation and skips every downstream rule for that value
// (spec §4.4 "TypeCheck failure... causes downstream domain rules to skip
// that value").
func ParseValue(declaredType rule.ColumnType, dateFormat, raw string) (any, bool) {
	switch declaredType {
	case rule.String:
		return raw, true
	case rule.Integer:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case rule.Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case rule.Date:
		t, err := time.Parse(dateFormat, raw)
		if err != nil {
			return nil, false
		}
		return civil.DateOf(t), true
	default:
		return nil, false
	}
}
