package compile

import (
	"fmt"

	"github.com/GrGLeo/dataguard/rule"
)

// ErrorKind names the taxonomy of compile-time errors from spec §4.1/§4.3/§7.
type ErrorKind string

const (
	ErrIncompatibleRule ErrorKind = "incompatible_rule"
	ErrInvalidParameter ErrorKind = "invalid_parameter"
	ErrSchemaMismatch   ErrorKind = "schema_mismatch"
	ErrUnknownColumn    ErrorKind = "unknown_column"
	ErrRegexCompile     ErrorKind = "regex_compile_error"
)

// Error is the typed error the compiler returns. It identifies the column
// (and, when applicable, the rule kind) it was raised for, so a CLI
// collaborator can render source context; an out-of-range relation
// threshold carries neither.
type Error struct {
	Kind   ErrorKind
	Column string
	Rule   rule.Kind
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Column != "" && e.Rule != "":
		return fmt.Sprintf("%s: column %q, rule %q: %s", e.Kind, e.Column, e.Rule, e.Msg)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Kind, e.Column, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func incompatibleRule(column string, k rule.Kind, t rule.ColumnType) error {
	return &Error{
		Kind:   ErrIncompatibleRule,
		Column: column,
		Rule:   k,
		Msg:    fmt.Sprintf("rule does not apply to column type %s", t),
	}
}

func invalidParameter(column string, k rule.Kind, msg string, cause error) error {
	return &Error{Kind: ErrInvalidParameter, Column: column, Rule: k, Msg: msg, Err: cause}
}

func schemaMismatch(column string, msg string) error {
	return &Error{Kind: ErrSchemaMismatch, Column: column, Msg: msg}
}

func unknownColumn(name string) error {
	return &Error{Kind: ErrUnknownColumn, Column: name, Msg: "no such column"}
}

func regexCompileError(column string, k rule.Kind, cause error) error {
	return &Error{Kind: ErrRegexCompile, Column: column, Rule: k, Msg: cause.Error(), Err: cause}
}
