package compiler

import "predeval/errcode"
import "predeval/schema"

// ResolvedAttribute is the outcome of validating one attribute reference
// (an LHS path plus an optional index/key) against a schema, shared by
// the expression compiler and the standalone attribute fetcher.
type ResolvedAttribute struct {
	Path       string
	Type       string
	IndexOrKey string
	// ValueType is Type itself for a scalar attribute, or the resolved
	// element/value type when IndexOrKey is set.
	ValueType string
}

// ResolveAttribute parses attrExpr (an attribute path optionally followed
// by "[index]" or "[\"key\"]") against paths, the same way the validator
// resolves an LHS inside a predicate clause. It requires attrExpr to be
// consumed in full: trailing, unparsed text is an error.
func ResolveAttribute(paths *schema.PathMap, attrExpr string) (ResolvedAttribute, errcode.Code) {
	c := &cursor{s: attrExpr}

	path, typ, ok := paths.LongestMatch(c.rest())
	if !ok {
		return ResolvedAttribute{}, errcode.LHSAttributeNotFound
	}
	c.advance(len(path))

	kind := classify(typ)
	result := ResolvedAttribute{Path: path, Type: typ, ValueType: typ}

	switch kind {
	case kindList:
		if c.peekByte() == '[' {
			idx, code := parseListIndex(c)
			if code != errcode.AllClear {
				return ResolvedAttribute{}, code
			}
			result.IndexOrKey = idx
			result.ValueType = elementType(typ)
		}
	case kindMap:
		if c.peekByte() == '[' {
			keyKind := mapKeyKind(typ)
			key, code := parseMapKey(c, keyKind)
			if code != errcode.AllClear {
				return ResolvedAttribute{}, code
			}
			result.IndexOrKey = key
			result.ValueType = valueType(typ)
		}
	case kindListOfTuple:
		if c.peekByte() == '[' {
			idx, code := parseListIndex(c)
			if code != errcode.AllClear {
				return ResolvedAttribute{}, code
			}
			result.IndexOrKey = idx
			result.ValueType = innerAngle(typ, "list")
		}
	}

	if !c.eof() {
		return ResolvedAttribute{}, errcode.NonSpaceAfterValidAttributeName
	}

	return result, errcode.AllClear
}
