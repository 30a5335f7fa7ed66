package runtime

import (
	"errors"

	"fwjs/engine/ast"
)

// Every evaluation failure wraps exactly one of these.
var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrNotCallable          = errors.New("not callable")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrDuplicateDeclaration, "duplicate_declaration"},
	{ErrTypeMismatch, "type_mismatch"},
	{ErrDivisionByZero, "division_by_zero"},
	{ErrNotCallable, "not_callable"},
	{ast.ErrMalformedTree, "malformed_tree"},
	{ast.ErrMalformedLiteral, "malformed_literal"},
}

// Kind returns a stable label for the error kind wrapped by err, or "unknown".
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}
