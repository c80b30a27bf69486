// Package charclass implements the fixed, catalog-level predicates behind
// rule.KindStringCharClass. Patterns are intentionally permissive per
// spec open question (a): callers needing stricter validation should use
// StringRegex instead.
package charclass

import (
	"net/url"
	"regexp"
	"unicode"

	"github.com/google/uuid"

	"github.com/GrGLeo/dataguard/rule"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// Predicate returns the matcher for a given class, or nil if class is
// unknown (a compile-time InvalidParameter error, not a runtime concern).
func Predicate(class rule.CharClass) func(string) bool {
	switch class {
	case rule.ClassNumeric:
		return Numeric
	case rule.ClassAlpha:
		return Alpha
	case rule.ClassAlphanumeric:
		return Alphanumeric
	case rule.ClassLowercase:
		return Lowercase
	case rule.ClassUppercase:
		return Uppercase
	case rule.ClassEmail:
		return Email
	case rule.ClassURL:
		return URL
	case rule.ClassUUID:
		return UUID
	default:
		return nil
	}
}

// Numeric reports whether s is non-empty and every rune is an ASCII digit.
func Numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Alpha reports whether s is non-empty and every rune is a Unicode letter.
func Alpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Alphanumeric reports whether s is non-empty and every rune is a Unicode
// letter or digit.
func Alphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Lowercase reports whether s is non-empty and contains no uppercase
// letters.
func Lowercase(s string) bool {
	if s == "" {
		return false
	}
	return s == stringsToLower(s)
}

// Uppercase reports whether s is non-empty and contains no lowercase
// letters.
func Uppercase(s string) bool {
	if s == "" {
		return false
	}
	return s == stringsToUpper(s)
}

func stringsToLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}

func stringsToUpper(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToUpper(r)
	}
	return string(out)
}

// Email applies the inline permissive pattern from spec §4.4.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// URL reports whether s parses with both a scheme and an authority
// present, e.g. "https://example.com" but not "example.com" or "/path".
func URL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// UUID accepts whatever google/uuid's uuid.Parse accepts: the hyphenated
// 8-4-4-4-12 hex form, the same wrapped in braces or prefixed with
// "urn:uuid:", and 32 hex digits without hyphens, in either case. Version
// and variant bits are not checked. The inline 8-4-4-4-12 pattern accepts
// only a subset of those forms, so the result is the same as uuid.Parse's.
func UUID(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	return uuidPattern.MatchString(s)
}
