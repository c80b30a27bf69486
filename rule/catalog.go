package rule

// applicability lists, for every catalog kind, which column types accept
// it. TypeCheck, NullCheck and Unicity apply to every type and are handled
// separately by the compiler rather than listed here.
var applicability = map[Kind][]ColumnType{
	KindStringLength:    {String},
	KindStringRegex:     {String},
	KindStringInSet:     {String},
	KindStringCharClass: {String},
	KindNumericRange:    {Integer, Float},
	KindMonotonicity:    {Integer, Float, Date},
	KindStdDevCheck:     {Integer, Float},
	KindMeanVariance:    {Integer, Float},
	KindDateBefore:      {Date},
	KindDateAfter:       {Date},
	KindDateNotFuture:   {Date},
	KindDateNotPast:     {Date},
	KindDateWeekday:     {Date},
	KindDateWeekend:     {Date},
}

// AppliesTo reports whether kind is a valid rule for columns of type t.
// TypeCheck, NullCheck and Unicity are universal.
func (k Kind) AppliesTo(t ColumnType) bool {
	switch k {
	case KindTypeCheck, KindNullCheck, KindUnicity:
		return true
	}
	types, ok := applicability[k]
	if !ok {
		return false
	}
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsStatRule reports whether a rule kind requires a cross-batch
// StatsAccumulator (mean/variance/stddev known only after all batches).
func (k Kind) IsStatRule() bool {
	return k == KindStdDevCheck || k == KindMeanVariance
}

// IsCrossBatch reports whether a rule's verdict cannot be decided within a
// single batch (stats rules and uniqueness).
func (k Kind) IsCrossBatch() bool {
	return k.IsStatRule() || k == KindUnicity
}
