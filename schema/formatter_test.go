package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/tupleview"
)

// fakeValue is a minimal hand-built tupleview.TupleView used to exercise
// Format without depending on any concrete adapter.
type fakeValue struct {
	mt     tupleview.MetaType
	bound  int
	fields []tupleview.AttributeName
	byName map[string]*fakeValue
	elems  []*fakeValue
}

func (f *fakeValue) MetaType() tupleview.MetaType           { return f.mt }
func (f *fakeValue) BoundedSize() int                        { return f.bound }
func (f *fakeValue) AttributeNames() []tupleview.AttributeName { return f.fields }
func (f *fakeValue) AttributeValue(name string) (tupleview.TupleView, error) {
	return f.byName[name], nil
}
func (f *fakeValue) Iterate() ([]tupleview.TupleView, error) {
	out := make([]tupleview.TupleView, len(f.elems))
	for i, e := range f.elems {
		out[i] = e
	}
	return out, nil
}
func (f *fakeValue) IteratePairs() ([]tupleview.KeyValue, error) { return nil, nil }
func (f *fakeValue) EnumValues() []string                        { return nil }
func (f *fakeValue) AsBool() (bool, error)                        { return false, nil }
func (f *fakeValue) AsInt() (int64, error)                        { return 0, nil }
func (f *fakeValue) AsUint() (uint64, error)                      { return 0, nil }
func (f *fakeValue) AsFloat() (float64, error)                    { return 0, nil }
func (f *fakeValue) AsString() (string, error)                    { return "", nil }

func tupleOf(fields ...tupleview.AttributeName) *fakeValue {
	return &fakeValue{mt: tupleview.Tuple, fields: fields, byName: map[string]*fakeValue{}}
}

func TestFormatFlatTuple(t *testing.T) {
	name := &fakeValue{mt: tupleview.RString}
	age := &fakeValue{mt: tupleview.Int32}

	root := tupleOf(
		tupleview.AttributeName{Name: "name", Index: 0},
		tupleview.AttributeName{Name: "age", Index: 1},
	)
	root.byName["name"] = name
	root.byName["age"] = age

	got := Format(root)
	require.Equal(t, "tuple<rstring name,int32 age>", got)
}

func TestFormatNestedTupleAndList(t *testing.T) {
	elem := &fakeValue{mt: tupleview.Int32}
	marks := &fakeValue{mt: tupleview.List, elems: []*fakeValue{elem}}

	inner := tupleOf(tupleview.AttributeName{Name: "city", Index: 0})
	inner.byName["city"] = &fakeValue{mt: tupleview.RString}

	root := tupleOf(
		tupleview.AttributeName{Name: "marks", Index: 0},
		tupleview.AttributeName{Name: "address", Index: 1},
	)
	root.byName["marks"] = marks
	root.byName["address"] = inner

	got := Format(root)
	require.Equal(t, "tuple<list<int32> marks,tuple<rstring city> address>", got)
}

func TestFormatBoundedString(t *testing.T) {
	v := &fakeValue{mt: tupleview.RString, bound: 10}
	root := tupleOf(tupleview.AttributeName{Name: "code", Index: 0})
	root.byName["code"] = v

	got := Format(root)
	require.Equal(t, "tuple<rstring[10] code>", got)
}
