package jsontuple

import "strings"

// field is one declared member of a tuple<...> canonical type.
type field struct {
	name string
	typ  string
}

// parseTupleFields splits a "tuple<type name, type name, ...>" canonical
// type into its member fields, without flattening nested tuples — each
// field keeps its own full type string for recursive AttributeValue
// lookups.
func parseTupleFields(typ string) []field {
	body := strings.TrimSuffix(strings.TrimPrefix(typ, "tuple<"), ">")
	if body == "" {
		return nil
	}
	var fields []field
	for _, part := range splitTopLevel(body) {
		ft, fn := splitTypeAndName(part)
		fields = append(fields, field{name: fn, typ: ft})
	}
	return fields
}

// splitTopLevel splits body on depth-0 commas.
func splitTopLevel(body string) []string {
	var parts []string
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
				parts = append(parts, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(body[start:]))
	return parts
}

// splitTypeAndName splits "type name" at its first depth-0 space.
func splitTypeAndName(field string) (typ, name string) {
	depth := 0
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ' ':
			if depth == 0 {
				return field[:i], strings.TrimSpace(field[i+1:])
			}
		}
	}
	return field, ""
}

// innerAngleLocal extracts the text between "base<" and its matching
// '>' in typ.
func innerAngleLocal(typ, base string) string {
	s := strings.TrimPrefix(typ, base+"<")
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

// innerMapBody extracts the "K,V" body of a map<K,V> canonical type.
func innerMapBody(typ string) string {
	return innerAngleLocal(typ, "map")
}

// splitMapTypes splits a map<K,V> body into its key and value type
// strings.
func splitMapTypes(body string) (key, value string) {
	depth := 0
	for i, r := range body {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(body[:i]), strings.TrimSpace(body[i+1:])
			}
		}
	}
	return body, ""
}
