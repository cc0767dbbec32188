package jsontuple

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/tupleview"
)

const sampleSchema = `tuple<rstring name,int32 age,boolean active,list<int32> marks,map<rstring,int32> kv,tuple<rstring city,int32 zip> address>`
const sampleJSON = `{"name":"IBM","age":30,"active":true,"marks":[10,20,30],"kv":{"a":1,"b":2},"address":{"city":"Armonk","zip":10504}}`

func TestNewRejectsInvalidJSON(t *testing.T) {
	_, err := New("{not json", sampleSchema)
	require.Error(t, err)
}

func TestScalarFieldAccess(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)

	name, err := tup.AttributeValue("name")
	require.NoError(t, err)
	require.Equal(t, tupleview.RString, name.MetaType())
	s, err := name.AsString()
	require.NoError(t, err)
	require.Equal(t, "IBM", s)

	age, err := tup.AttributeValue("age")
	require.NoError(t, err)
	require.Equal(t, tupleview.Int32, age.MetaType())
	n, err := age.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(30), n)

	active, err := tup.AttributeValue("active")
	require.NoError(t, err)
	b, err := active.AsBool()
	require.NoError(t, err)
	require.True(t, b)
}

func TestListIteration(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)

	marks, err := tup.AttributeValue("marks")
	require.NoError(t, err)
	require.Equal(t, tupleview.List, marks.MetaType())

	elems, err := marks.Iterate()
	require.NoError(t, err)
	require.Len(t, elems, 3)
	n, err := elems[1].AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(20), n)
}

func TestMapIteration(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)

	kv, err := tup.AttributeValue("kv")
	require.NoError(t, err)
	require.Equal(t, tupleview.Map, kv.MetaType())

	pairs, err := kv.IteratePairs()
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		k, err := p.Key.AsString()
		require.NoError(t, err)
		require.Contains(t, []string{"a", "b"}, k)
	}
}

func TestNestedTupleAccess(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)

	address, err := tup.AttributeValue("address")
	require.NoError(t, err)
	require.Equal(t, tupleview.Tuple, address.MetaType())

	city, err := address.AttributeValue("city")
	require.NoError(t, err)
	s, err := city.AsString()
	require.NoError(t, err)
	require.Equal(t, "Armonk", s)
}

func TestAttributeValueUnknownField(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)

	_, err = tup.AttributeValue("bogus")
	require.Error(t, err)
}

func TestWithAttributeRoundTrip(t *testing.T) {
	updated, err := WithAttribute(sampleJSON, "age", "31")
	require.NoError(t, err)

	tup, err := New(updated, sampleSchema)
	require.NoError(t, err)
	age, err := tup.AttributeValue("age")
	require.NoError(t, err)
	n, err := age.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(31), n)
}

func TestRaw(t *testing.T) {
	tup, err := New(sampleJSON, sampleSchema)
	require.NoError(t, err)
	require.NotEmpty(t, tup.Raw())
}
