// Package fetcher implements the standalone attribute fetcher: given a
// schema, a tuple matching it, and an attribute reference string, return
// the referenced value without compiling or evaluating a full predicate.
// It reuses the same schema parsing and LHS-resolution machinery the
// predicate compiler uses for an LHS path, so "name" and "marks[2]"
// resolve identically whether they appear as a fetch target or as the
// left-hand side of a predicate clause.
package fetcher

import (
	"strings"

	"predeval/compiler"
	"predeval/errcode"
	"predeval/eval"
	"predeval/schema"
	"predeval/tupleview"
)

// Fetch resolves attribute against paths and returns the matching value
// from tuple. attribute must be a complete attribute reference (a
// registered dotted path, optionally followed by a single "[index]" or
// "[\"key\"]" suffix) with no trailing text.
func Fetch(paths *schema.PathMap, tuple tupleview.TupleView, attribute string) (tupleview.TupleView, errcode.Code) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return nil, errcode.EmptyAttributeName
	}

	resolved, code := compiler.ResolveAttribute(paths, attribute)
	if code != errcode.AllClear {
		return nil, code
	}

	return eval.ResolveValue(tuple, resolved)
}

// FetchType resolves attribute against paths and returns the canonical
// type string of the value it would yield, without touching a tuple.
// Useful for validating a stored attribute reference ahead of time.
func FetchType(paths *schema.PathMap, attribute string) (string, errcode.Code) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return "", errcode.EmptyAttributeName
	}
	resolved, code := compiler.ResolveAttribute(paths, attribute)
	if code != errcode.AllClear {
		return "", code
	}
	return resolved.ValueType, errcode.AllClear
}
