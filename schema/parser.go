package schema

import (
	"strings"

	"predeval/errcode"
)

// PathMap is the ordered mapping dotted.path -> type: every key is a
// syntactically valid identifier path, there are no duplicates, and
// paths referencing into list<tuple<...>> contents do not appear — those
// are resolved recursively at validate/eval time.
type PathMap struct {
	order []string
	types map[string]string
}

func newPathMap() *PathMap {
	return &PathMap{types: make(map[string]string)}
}

// Paths returns the attribute paths in registration order.
func (m *PathMap) Paths() []string {
	return m.order
}

// Type returns the canonical type string registered for path, and whether
// it was found.
func (m *PathMap) Type(path string) (string, bool) {
	t, ok := m.types[path]
	return t, ok
}

// Len reports the number of registered leaf attributes.
func (m *PathMap) Len() int {
	return len(m.order)
}

func (m *PathMap) register(path, typ string) errcode.Code {
	if path == "" {
		return errcode.SchemaEmptyAttributeName
	}
	if _, exists := m.types[path]; exists {
		return errcode.SchemaDuplicateAttributePath
	}
	m.order = append(m.order, path)
	m.types[path] = typ
	return errcode.AllClear
}

// LongestMatch finds the longest attribute path in m that is a prefix of
// s starting at index 0. It returns the matched path, its type, and
// whether a match was found.
func (m *PathMap) LongestMatch(s string) (path string, typ string, ok bool) {
	best := ""
	for _, p := range m.order {
		if len(p) <= len(best) {
			continue
		}
		if strings.HasPrefix(s, p) {
			best = p
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, m.types[best], true
}

// Parse splits a canonical type string into its attribute path map.
// canonical must begin with "tuple<".
func Parse(canonical string) (*PathMap, errcode.Code) {
	canonical = strings.TrimSpace(canonical)
	if !strings.HasPrefix(canonical, "tuple<") {
		return nil, errcode.SchemaMissingTuplePrefix
	}
	if depthBalance(canonical) != 0 {
		return nil, errcode.SchemaUnmatchedAngleBracket
	}
	if !strings.HasSuffix(canonical, ">") {
		return nil, errcode.SchemaUnmatchedAngleBracket
	}

	m := newPathMap()
	if code := parseTupleBody(canonical, "", m); code != errcode.AllClear {
		return nil, code
	}
	return m, errcode.AllClear
}

// depthBalance returns the net '<'/'>' depth across s; zero means
// balanced.
func depthBalance(s string) int {
	depth := 0
	for _, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		}
	}
	return depth
}

// parseTupleBody parses the body of a "tuple<...>" type string, flattening
// nested tuple attributes under prefix with "." as separator, and
// registering every other leaf (including list<tuple<...>>, which is kept
// as a single entry rather than recursed into).
func parseTupleBody(tupleType string, prefix string, out *PathMap) errcode.Code {
	body := strings.TrimSuffix(strings.TrimPrefix(tupleType, "tuple<"), ">")
	fields := splitTopLevel(body)

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		fieldType, fieldName, code := splitTypeAndName(field)
		if code != errcode.AllClear {
			return code
		}

		var qualified string
		if prefix == "" {
			qualified = fieldName
		} else {
			qualified = prefix + "." + fieldName
		}

		if isPlainTuple(fieldType) {
			if code := parseTupleBody(fieldType, qualified, out); code != errcode.AllClear {
				return code
			}
			continue
		}

		if isListOrSetOfTuple(fieldType) && !strings.Contains(fieldType, ">> ") && !strings.HasSuffix(fieldType, ">>") {
			return errcode.SchemaMissingListTupleClose
		}

		if code := out.register(qualified, fieldType); code != errcode.AllClear {
			return code
		}
	}

	return errcode.AllClear
}

// isPlainTuple reports whether t is exactly a "tuple<...>" type (not
// wrapped in list<...>/set<...>/map<...,...>).
func isPlainTuple(t string) bool {
	return strings.HasPrefix(t, "tuple<")
}

// isListOrSetOfTuple reports whether t is a list<tuple<...>> or
// set<tuple<...>> type — the LOT (list of tuple) case from the glossary,
// whose contents are not flattened into the path map.
func isListOrSetOfTuple(t string) bool {
	return strings.HasPrefix(t, "list<tuple<") || strings.HasPrefix(t, "set<tuple<")
}

// splitTopLevel splits body on commas that occur at bracket depth 0.
func splitTopLevel(body string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, r := range body {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				fields = append(fields, body[start:i])
				start = i + 1
			}
		}
	}
	if start <= len(body) {
		fields = append(fields, body[start:])
	}
	return fields
}

// splitTypeAndName splits a single "type name" field segment at the first
// bracket-depth-0 space, per the grammar: `field := type " " ident`.
func splitTypeAndName(field string) (typ string, name string, code errcode.Code) {
	depth := 0
	for i, r := range field {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ' ':
			if depth == 0 && i > 0 {
				typ = field[:i]
				name = strings.TrimSpace(field[i+1:])
				if name == "" {
					return "", "", errcode.SchemaMissingAttributeSpace
				}
				return typ, name, errcode.AllClear
			}
		}
	}
	return "", "", errcode.SchemaMissingAttributeCommaOrClose
}
