package column

import "github.com/GrGLeo/dataguard/rule"

// StringBuilder assembles rules for a String column.
type StringBuilder struct {
	spec Spec
}

// StringColumn starts a builder chain for a String column named name.
func StringColumn(name string) *StringBuilder {
	return &StringBuilder{spec: Spec{Name: name, Type: rule.String}}
}

// Build freezes the chain into an immutable Spec.
func (b *StringBuilder) Build() *Spec {
	return &b.spec
}

// Threshold sets the tolerance on the most recently appended rule.
func (b *StringBuilder) Threshold(t rule.Threshold) *StringBuilder {
	b.spec.Rules = withThreshold(b.spec.Rules, t)
	return b
}

// WithMinLength requires at least n code points.
func (b *StringBuilder) WithMinLength(n int) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringLength, rule.StringLengthParams{Min: &n})
	return b
}

// WithMaxLength requires at most n code points.
func (b *StringBuilder) WithMaxLength(n int) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringLength, rule.StringLengthParams{Max: &n})
	return b
}

// WithLength requires between min and max code points, inclusive.
func (b *StringBuilder) WithLength(min, max int) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringLength, rule.StringLengthParams{Min: &min, Max: &max})
	return b
}

// WithRegex requires a full match against pattern, with no inline flags
// (see WithRegexFlags).
func (b *StringBuilder) WithRegex(pattern string) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringRegex, rule.StringRegexParams{Pattern: pattern})
	return b
}

// WithRegexFlags is WithRegex with explicit inline regexp flags: flags, if
// non-empty, is prepended as a Go regexp inline flag group (e.g. "i").
func (b *StringBuilder) WithRegexFlags(pattern, flags string) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringRegex, rule.StringRegexParams{Pattern: pattern, Flags: flags})
	return b
}

// InSet requires exact equality against one of values.
func (b *StringBuilder) InSet(values ...string) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringInSet, rule.StringInSetParams{Values: values})
	return b
}

// IsNumeric requires every code point to be an ASCII digit.
func (b *StringBuilder) IsNumeric() *StringBuilder { return b.charClass(rule.ClassNumeric) }

// IsAlpha requires every code point to be a Unicode letter.
func (b *StringBuilder) IsAlpha() *StringBuilder { return b.charClass(rule.ClassAlpha) }

// IsAlphanumeric requires every code point to be a Unicode letter or digit.
func (b *StringBuilder) IsAlphanumeric() *StringBuilder { return b.charClass(rule.ClassAlphanumeric) }

// IsLowercase requires no uppercase letters.
func (b *StringBuilder) IsLowercase() *StringBuilder { return b.charClass(rule.ClassLowercase) }

// IsUppercase requires no lowercase letters.
func (b *StringBuilder) IsUppercase() *StringBuilder { return b.charClass(rule.ClassUppercase) }

// IsEmail applies the permissive inline email pattern.
func (b *StringBuilder) IsEmail() *StringBuilder { return b.charClass(rule.ClassEmail) }

// IsURL requires a scheme and an authority to be present.
func (b *StringBuilder) IsURL() *StringBuilder { return b.charClass(rule.ClassURL) }

// IsUUID requires an RFC-4122 or 8-4-4-4-12 hex form.
func (b *StringBuilder) IsUUID() *StringBuilder { return b.charClass(rule.ClassUUID) }

func (b *StringBuilder) charClass(class rule.CharClass) *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindStringCharClass, rule.StringCharClassParams{Class: class})
	return b
}

// IsNotNull requires a non-null value.
func (b *StringBuilder) IsNotNull() *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindNullCheck, nil)
	return b
}

// IsUnique requires every non-null value to occur exactly once across all
// batches.
func (b *StringBuilder) IsUnique() *StringBuilder {
	b.spec.Rules = appendRule(b.spec.Rules, rule.KindUnicity, nil)
	return b
}
