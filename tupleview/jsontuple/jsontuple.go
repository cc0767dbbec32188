// Package jsontuple is a concrete tupleview.TupleView backed by a JSON
// document and an explicit canonical type string, read with
// github.com/tidwall/gjson and spliced with github.com/tidwall/sjson.
// JSON alone cannot distinguish int8 from int32 or a tuple from a bare
// map, so every node carries its own slice of the canonical schema
// alongside the gjson.Result it wraps.
package jsontuple

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"predeval/tupleview"
)

// Tuple is a tupleview.TupleView over one JSON value, typed by typ (a
// canonical type string fragment rooted at this node).
type Tuple struct {
	typ string
	val gjson.Result
}

// New parses jsonText as the root value described by schemaString
// (which must begin with "tuple<").
func New(jsonText, schemaString string) (*Tuple, error) {
	if !gjson.Valid(jsonText) {
		return nil, fmt.Errorf("jsontuple: invalid JSON document")
	}
	return &Tuple{typ: strings.TrimSpace(schemaString), val: gjson.Parse(jsonText)}, nil
}

// Raw returns the underlying JSON text for this node.
func (t *Tuple) Raw() string {
	return t.val.Raw
}

// WithAttribute returns a copy of the root document with the attribute
// at dotted path set to a new raw JSON value, using sjson. Intended for
// building test fixtures and fetcher round-trip tests, not for any
// predicate-evaluation path (which never mutates a tuple).
func WithAttribute(rootJSON, path, rawJSONValue string) (string, error) {
	return sjson.SetRaw(rootJSON, strings.ReplaceAll(path, ".", "."), rawJSONValue)
}

func (t *Tuple) baseName() string {
	switch {
	case strings.HasPrefix(t.typ, "list<"):
		return "list"
	case strings.HasPrefix(t.typ, "set<"):
		return "set"
	case strings.HasPrefix(t.typ, "map<"):
		return "map"
	case strings.HasPrefix(t.typ, "tuple<"):
		return "tuple"
	case strings.HasPrefix(t.typ, "enum<"):
		return "enum"
	default:
		name := t.typ
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		return name
	}
}

// MetaType reports this node's kind from its stored canonical type.
func (t *Tuple) MetaType() tupleview.MetaType {
	switch t.baseName() {
	case "boolean":
		return tupleview.Boolean
	case "int8":
		return tupleview.Int8
	case "int16":
		return tupleview.Int16
	case "int32":
		return tupleview.Int32
	case "int64":
		return tupleview.Int64
	case "uint8":
		return tupleview.UInt8
	case "uint16":
		return tupleview.UInt16
	case "uint32":
		return tupleview.UInt32
	case "uint64":
		return tupleview.UInt64
	case "float32":
		return tupleview.Float32
	case "float64":
		return tupleview.Float64
	case "rstring":
		return tupleview.RString
	case "ustring":
		return tupleview.UString
	case "bstring":
		return tupleview.BString
	case "list":
		return tupleview.List
	case "set":
		return tupleview.Set
	case "map":
		return tupleview.Map
	case "tuple":
		return tupleview.Tuple
	case "enum":
		return tupleview.Enum
	case "decimal32":
		return tupleview.Decimal32
	case "decimal64":
		return tupleview.Decimal64
	case "decimal128":
		return tupleview.Decimal128
	case "complex32":
		return tupleview.Complex32
	case "complex64":
		return tupleview.Complex64
	case "timestamp":
		return tupleview.Timestamp
	case "blob":
		return tupleview.Blob
	case "xml":
		return tupleview.XML
	default:
		return tupleview.RString
	}
}

// BoundedSize returns the declared "[N]" bound, or 0 if unbounded.
func (t *Tuple) BoundedSize() int {
	i := strings.LastIndexByte(t.typ, '[')
	if i < 0 || !strings.HasSuffix(t.typ, "]") {
		return 0
	}
	n, err := strconv.Atoi(t.typ[i+1 : len(t.typ)-1])
	if err != nil {
		return 0
	}
	return n
}

// AttributeNames returns the field names declared in this node's
// tuple<...> type, in declaration order.
func (t *Tuple) AttributeNames() []tupleview.AttributeName {
	fields := parseTupleFields(t.typ)
	names := make([]tupleview.AttributeName, len(fields))
	for i, f := range fields {
		names[i] = tupleview.AttributeName{Name: f.name, Index: i}
	}
	return names
}

// AttributeValue returns the TupleView for field name of this tuple
// node.
func (t *Tuple) AttributeValue(name string) (tupleview.TupleView, error) {
	for _, f := range parseTupleFields(t.typ) {
		if f.name == name {
			child := t.val.Get(gjsonEscape(name))
			return &Tuple{typ: f.typ, val: child}, nil
		}
	}
	return nil, fmt.Errorf("jsontuple: no such field %q", name)
}

// Iterate returns this node's list/set elements, typed by the element
// type declared inside list<...>/set<...>.
func (t *Tuple) Iterate() ([]tupleview.TupleView, error) {
	elemType := innerAngleLocal(t.typ, t.baseName())
	var out []tupleview.TupleView
	t.val.ForEach(func(_, value gjson.Result) bool {
		out = append(out, &Tuple{typ: elemType, val: value})
		return true
	})
	return out, nil
}

// IteratePairs returns this node's map entries, in JSON object order.
// Keys are typed per the map's declared key type; this adapter only
// supports string-keyed JSON objects, the natural JSON representation
// for a map.
func (t *Tuple) IteratePairs() ([]tupleview.KeyValue, error) {
	body := innerMapBody(t.typ)
	keyType, valType := splitMapTypes(body)

	var out []tupleview.KeyValue
	t.val.ForEach(func(key, value gjson.Result) bool {
		out = append(out, tupleview.KeyValue{
			Key:   &Tuple{typ: keyType, val: key},
			Value: &Tuple{typ: valType, val: value},
		})
		return true
	})
	return out, nil
}

// EnumValues returns the declared members of this node's enum<...> type.
func (t *Tuple) EnumValues() []string {
	if !strings.HasPrefix(t.typ, "enum<") {
		return nil
	}
	body := strings.TrimSuffix(strings.TrimPrefix(t.typ, "enum<"), ">")
	var vals []string
	for _, v := range strings.Split(body, ",") {
		vals = append(vals, strings.TrimSpace(v))
	}
	return vals
}

func (t *Tuple) AsBool() (bool, error) {
	if t.val.Type != gjson.True && t.val.Type != gjson.False {
		return false, fmt.Errorf("jsontuple: not a boolean")
	}
	return t.val.Bool(), nil
}

func (t *Tuple) AsInt() (int64, error) {
	if t.val.Type != gjson.Number {
		return 0, fmt.Errorf("jsontuple: not a number")
	}
	return t.val.Int(), nil
}

func (t *Tuple) AsUint() (uint64, error) {
	if t.val.Type != gjson.Number {
		return 0, fmt.Errorf("jsontuple: not a number")
	}
	return t.val.Uint(), nil
}

func (t *Tuple) AsFloat() (float64, error) {
	if t.val.Type != gjson.Number {
		return 0, fmt.Errorf("jsontuple: not a number")
	}
	return t.val.Float(), nil
}

func (t *Tuple) AsString() (string, error) {
	if t.val.Type != gjson.String {
		return "", fmt.Errorf("jsontuple: not a string")
	}
	return t.val.String(), nil
}

func gjsonEscape(name string) string {
	return strings.NewReplacer(".", "\\.", "*", "\\*", "?", "\\?").Replace(name)
}
