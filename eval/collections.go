package eval

import (
	"strconv"
	"strings"

	"predeval/errcode"
	"predeval/tupleview"
)

// indexList resolves a list<...> value's element at the decimal index
// encoded in idx.
func indexList(v tupleview.TupleView, idx string) (tupleview.TupleView, errcode.Code) {
	n, err := strconv.Atoi(idx)
	if err != nil {
		return nil, errcode.InvalidIndexForLHSListAttribute
	}
	elems, ierr := v.Iterate()
	if ierr != nil {
		return nil, errcode.NotACollectionAtEvalTime
	}
	if n < 0 || n >= len(elems) {
		return nil, errcode.InvalidIndexForLHSListAttribute
	}
	return elems[n], errcode.AllClear
}

// lookupMap resolves a map<...> value's entry for key, which is the
// RHS-literal text of the LHS map key (a decimal number for a numeric
// key, or the unquoted text for a string key). Float keys are compared
// textually: the map's key TupleView is rendered via its AsString/
// AsFloat/AsInt accessor and string-compared against key, never parsed
// back into a float for numeric equality. This mirrors the documented
// legacy lookup rule instead of a binary float comparison.
func lookupMap(v tupleview.TupleView, key string) (tupleview.TupleView, errcode.Code) {
	pairs, err := v.IteratePairs()
	if err != nil {
		return nil, errcode.NotACollectionAtEvalTime
	}
	for _, kv := range pairs {
		if keyText(kv.Key) == key {
			return kv.Value, errcode.AllClear
		}
	}
	return nil, errcode.MissingKeyForLHSMapAttribute
}

// keyText renders a map key TupleView as text for comparison against a
// parsed RHS key literal.
func keyText(k tupleview.TupleView) string {
	switch k.MetaType() {
	case tupleview.RString, tupleview.UString, tupleview.BString:
		s, _ := k.AsString()
		return s
	case tupleview.Float32, tupleview.Float64:
		f, _ := k.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		if k.MetaType().IsUnsigned() {
			u, _ := k.AsUint()
			return strconv.FormatUint(u, 10)
		}
		i, _ := k.AsInt()
		return strconv.FormatInt(i, 10)
	}
}

// splitListLiteral splits a raw "in"/"inCI" list literal body (the text
// between the outer brackets, as captured by the compiler's dedicated
// list mini-parser) into its comma-separated elements, honoring quoted
// spans so a comma inside a quoted string is not treated as a separator.
func splitListLiteral(body string) []string {
	var parts []string
	var cur strings.Builder
	var q byte
	inQuote := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inQuote {
			cur.WriteByte(c)
			if c == q {
				inQuote = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = true
			q = c
			cur.WriteByte(c)
		case ',':
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 || len(parts) > 0 {
		parts = append(parts, strings.TrimSpace(cur.String()))
	}
	return parts
}

// unquote strips a single layer of matching quote characters from s, if
// present.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
