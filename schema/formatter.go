// Package schema renders canonical type strings for a tupleview.TupleView
// and splits them back into flattened attribute path maps.
package schema

import (
	"fmt"
	"strings"

	"predeval/tupleview"
)

// Format renders the canonical type string for v, recursing into tuples,
// lists, sets, and maps. Enum values are rendered as enum<v1,v2,...>
// preserving declaration order; bounded containers and bounded strings
// carry a trailing [N].
func Format(v tupleview.TupleView) string {
	var b strings.Builder
	formatInto(&b, v)
	return b.String()
}

func formatInto(b *strings.Builder, v tupleview.TupleView) {
	switch v.MetaType() {
	case tupleview.Tuple:
		b.WriteString("tuple<")
		names := v.AttributeNames()
		for i, an := range names {
			if i > 0 {
				b.WriteString(",")
			}
			field, err := v.AttributeValue(an.Name)
			if err != nil {
				continue
			}
			formatInto(b, field)
			b.WriteString(" ")
			b.WriteString(an.Name)
		}
		b.WriteString(">")
	case tupleview.List:
		b.WriteString("list<")
		formatElementType(b, v)
		b.WriteString(">")
		writeBound(b, v)
	case tupleview.Set:
		b.WriteString("set<")
		formatElementType(b, v)
		b.WriteString(">")
		writeBound(b, v)
	case tupleview.Map:
		b.WriteString("map<")
		formatMapTypes(b, v)
		b.WriteString(">")
		writeBound(b, v)
	case tupleview.Enum:
		b.WriteString("enum<")
		for i, val := range v.EnumValues() {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(val)
		}
		b.WriteString(">")
	case tupleview.RString, tupleview.BString:
		b.WriteString(v.MetaType().String())
		writeBound(b, v)
	default:
		b.WriteString(v.MetaType().String())
	}
}

// formatElementType renders the element type of a List/Set by formatting
// its first element if any are present, or "any" for an empty collection
// whose element type cannot be introspected through a single sample.
func formatElementType(b *strings.Builder, v tupleview.TupleView) {
	elems, err := v.Iterate()
	if err != nil || len(elems) == 0 {
		b.WriteString("any")
		return
	}
	formatInto(b, elems[0])
}

func formatMapTypes(b *strings.Builder, v tupleview.TupleView) {
	pairs, err := v.IteratePairs()
	if err != nil || len(pairs) == 0 {
		b.WriteString("any,any")
		return
	}
	formatInto(b, pairs[0].Key)
	b.WriteString(",")
	formatInto(b, pairs[0].Value)
}

func writeBound(b *strings.Builder, v tupleview.TupleView) {
	if n := v.BoundedSize(); n > 0 {
		fmt.Fprintf(b, "[%d]", n)
	}
}
