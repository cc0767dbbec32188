package compiler

import "strings"

// lhsKind is the coarse classification of a canonical LHS type used to
// drive the operator compatibility matrix.
type lhsKind int

const (
	kindBoolean lhsKind = iota
	kindInt
	kindUint
	kindFloat
	kindString
	kindList
	kindSet
	kindMap
	kindListOfTuple
	kindUnsupported
)

func classify(typ string) lhsKind {
	switch {
	case strings.HasPrefix(typ, "list<tuple<"):
		return kindListOfTuple
	case strings.HasPrefix(typ, "list<"):
		return kindList
	case strings.HasPrefix(typ, "set<"):
		return kindSet
	case strings.HasPrefix(typ, "map<"):
		return kindMap
	case typ == "boolean":
		return kindBoolean
	case typ == "int8", typ == "int16", typ == "int32", typ == "int64":
		return kindInt
	case typ == "uint8", typ == "uint16", typ == "uint32", typ == "uint64":
		return kindUint
	case typ == "float32", typ == "float64":
		return kindFloat
	case typ == "rstring", typ == "ustring", typ == "bstring":
		if typ == "rstring" {
			return kindString
		}
		return kindUnsupported
	default:
		if strings.HasPrefix(typ, "rstring[") {
			return kindString
		}
		return kindUnsupported
	}
}

func isNumeric(k lhsKind) bool {
	return k == kindInt || k == kindUint || k == kindFloat
}

func isCollection(k lhsKind) bool {
	return k == kindList || k == kindSet || k == kindMap
}

// mapKeyKind classifies a map<K,V> type's key type for RHS key parsing.
func mapKeyKind(typ string) lhsKind {
	inner := strings.TrimSuffix(strings.TrimPrefix(typ, "map<"), ">")
	comma := splitTopComma(inner)
	if comma == "" {
		return kindUnsupported
	}
	return classify(comma)
}

// innerAngle returns the text between "prefix<" and its matching '>' in
// typ, e.g. innerAngle("list<int32>", "list") == "int32".
func innerAngle(typ, prefix string) string {
	s := strings.TrimPrefix(typ, prefix+"<")
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}

// elementType returns the declared element type of a list<...> or
// set<...> LHS type.
func elementType(typ string) string {
	if strings.HasPrefix(typ, "list<") {
		return innerAngle(typ, "list")
	}
	if strings.HasPrefix(typ, "set<") {
		return innerAngle(typ, "set")
	}
	return ""
}

// valueType returns the declared value type of a map<K,V> LHS type.
func valueType(typ string) string {
	body := innerAngle(typ, "map")
	key := splitTopComma(body)
	if key == "" {
		return ""
	}
	return strings.TrimSpace(body[len(key)+1:])
}

// splitTopComma returns the text before the first depth-0 comma of s.
func splitTopComma(s string) string {
	depth := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return ""
}
