package charclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GrGLeo/dataguard/charclass"
	"github.com/GrGLeo/dataguard/rule"
)

func TestNumeric(t *testing.T) {
	assert.True(t, charclass.Numeric("12345"))
	assert.False(t, charclass.Numeric(""))
	assert.False(t, charclass.Numeric("12a"))
}

func TestAlpha(t *testing.T) {
	assert.True(t, charclass.Alpha("abcXYZ"))
	assert.True(t, charclass.Alpha("café"))
	assert.False(t, charclass.Alpha("abc1"))
	assert.False(t, charclass.Alpha(""))
}

func TestAlphanumeric(t *testing.T) {
	assert.True(t, charclass.Alphanumeric("abc123"))
	assert.False(t, charclass.Alphanumeric("abc-123"))
}

func TestLowercaseUppercase(t *testing.T) {
	assert.True(t, charclass.Lowercase("abc123"))
	assert.False(t, charclass.Lowercase("Abc"))
	assert.True(t, charclass.Uppercase("ABC123"))
	assert.False(t, charclass.Uppercase("ABc"))
}

func TestEmail(t *testing.T) {
	assert.True(t, charclass.Email("a@b.co"))
	assert.False(t, charclass.Email("bad"))
	assert.False(t, charclass.Email(""))
}

func TestURL(t *testing.T) {
	assert.True(t, charclass.URL("https://example.com/path"))
	assert.False(t, charclass.URL("example.com"))
	assert.False(t, charclass.URL("/just/a/path"))
}

func TestUUID(t *testing.T) {
	assert.True(t, charclass.UUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, charclass.UUID("not-a-uuid"))
}

func TestPredicateDispatch(t *testing.T) {
	assert.NotNil(t, charclass.Predicate(rule.ClassNumeric))
	assert.Nil(t, charclass.Predicate(rule.CharClass("bogus")))
}
