// Package tupleview defines the capability the engine consumes from a host
// record representation. The engine never reflects into a host's own
// struct types; it only ever talks to the TupleView interface.
package tupleview

// MetaType is the tag a TupleView reports for itself. It mirrors the
// primitive/collection vocabulary of the canonical type-string grammar.
type MetaType int

const (
	Boolean MetaType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	RString
	UString
	BString
	List
	Set
	Map
	Tuple
	Enum
	Decimal32
	Decimal64
	Decimal128
	Complex32
	Complex64
	Timestamp
	Blob
	XML
)

// String names a MetaType the way the canonical-type grammar spells it.
func (m MetaType) String() string {
	switch m {
	case Boolean:
		return "boolean"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case RString:
		return "rstring"
	case UString:
		return "ustring"
	case BString:
		return "bstring"
	case List:
		return "list"
	case Set:
		return "set"
	case Map:
		return "map"
	case Tuple:
		return "tuple"
	case Enum:
		return "enum"
	case Decimal32:
		return "decimal32"
	case Decimal64:
		return "decimal64"
	case Decimal128:
		return "decimal128"
	case Complex32:
		return "complex32"
	case Complex64:
		return "complex64"
	case Timestamp:
		return "timestamp"
	case Blob:
		return "blob"
	case XML:
		return "xml"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether m is one of the integer or floating-point
// primitive kinds legal as an arithmetic/relational LHS.
func (m MetaType) IsNumeric() bool {
	switch m {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether m is one of the unsigned integer kinds.
func (m MetaType) IsUnsigned() bool {
	switch m {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether m is one of the floating-point kinds.
func (m MetaType) IsFloat() bool {
	return m == Float32 || m == Float64
}

// IsComparisonLegal reports whether m is a legal LHS type for any
// comparison operator at all. decimal, complex, timestamp, blob, xml and
// enum types are schema-recognised but never legal LHS types. A bound
// is not part of the MetaType, so a bounded string or collection reports
// the same as its unbounded base kind.
func (m MetaType) IsComparisonLegal() bool {
	switch m {
	case Decimal32, Decimal64, Decimal128, Complex32, Complex64, Timestamp, Blob, XML, Enum:
		return false
	default:
		return true
	}
}

// AttributeName pairs a Tuple's field name with its declaration index.
type AttributeName struct {
	Name  string
	Index int
}

// TupleView is the opaque capability through which the engine reads a
// host record. The engine performs no reflection of its own; every
// traversal of a tuple's structure goes through this interface.
type TupleView interface {
	// MetaType reports this value's kind.
	MetaType() MetaType

	// BoundedSize returns the declared bound for a bounded primitive or
	// collection type (rstring[N], list<...>[N], ...), or 0 if unbounded.
	BoundedSize() int

	// AttributeNames returns the ordered field names of a Tuple value.
	// Valid only when MetaType() == Tuple.
	AttributeNames() []AttributeName

	// AttributeValue returns the TupleView for a named field of a Tuple
	// value. Valid only when MetaType() == Tuple.
	AttributeValue(name string) (TupleView, error)

	// Iterate returns the elements of a List or Set value in order.
	Iterate() ([]TupleView, error)

	// IteratePairs returns the key/value pairs of a Map value, in
	// iteration order.
	IteratePairs() ([]KeyValue, error)

	// EnumValues returns the declared value set of an Enum value, in
	// declaration order. Valid only when MetaType() == Enum.
	EnumValues() []string

	// Typed extraction. Each fails with a type mismatch if the
	// underlying value's MetaType does not match the accessor.
	AsBool() (bool, error)
	AsInt() (int64, error)
	AsUint() (uint64, error)
	AsFloat() (float64, error)
	AsString() (string, error)
}

// KeyValue is one entry of a Map TupleView, as returned by IteratePairs.
type KeyValue struct {
	Key   TupleView
	Value TupleView
}
