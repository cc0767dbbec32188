package fetcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/errcode"
	"predeval/fetcher"
	"predeval/schema"
	"predeval/tupleview/jsontuple"
)

const fetcherTestSchema = `tuple<rstring name,list<int32> marks,map<rstring,int32> kv>`
const fetcherTestTupleJSON = `{"name":"IBM","marks":[10,20,30],"kv":{"a":1,"b":2}}`

func TestFetchScalarAttribute(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)
	tuple, err := jsontuple.New(fetcherTestTupleJSON, fetcherTestSchema)
	require.NoError(t, err)

	v, code := fetcher.Fetch(paths, tuple, "name")
	require.Equal(t, errcode.AllClear, code)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "IBM", s)
}

func TestFetchIndexedListAttribute(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)
	tuple, err := jsontuple.New(fetcherTestTupleJSON, fetcherTestSchema)
	require.NoError(t, err)

	v, code := fetcher.Fetch(paths, tuple, "marks[1]")
	require.Equal(t, errcode.AllClear, code)
	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(20), n)
}

func TestFetchMapKeyAttribute(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)
	tuple, err := jsontuple.New(fetcherTestTupleJSON, fetcherTestSchema)
	require.NoError(t, err)

	v, code := fetcher.Fetch(paths, tuple, `kv["b"]`)
	require.Equal(t, errcode.AllClear, code)
	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestFetchUnknownAttribute(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)
	tuple, err := jsontuple.New(fetcherTestTupleJSON, fetcherTestSchema)
	require.NoError(t, err)

	_, code = fetcher.Fetch(paths, tuple, "bogus")
	require.Equal(t, errcode.LHSAttributeNotFound, code)
}

func TestFetchEmptyAttribute(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)
	tuple, err := jsontuple.New(fetcherTestTupleJSON, fetcherTestSchema)
	require.NoError(t, err)

	_, code = fetcher.Fetch(paths, tuple, "   ")
	require.Equal(t, errcode.EmptyAttributeName, code)
}

func TestFetchType(t *testing.T) {
	paths, code := schema.Parse(fetcherTestSchema)
	require.Equal(t, errcode.AllClear, code)

	typ, code := fetcher.FetchType(paths, "marks[0]")
	require.Equal(t, errcode.AllClear, code)
	require.Equal(t, "int32", typ)

	typ, code = fetcher.FetchType(paths, `kv["a"]`)
	require.Equal(t, errcode.AllClear, code)
	require.Equal(t, "int32", typ)
}
