package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/engine"
	"predeval/errcode"
	"predeval/tupleview/jsontuple"
)

const engineTestSchema = `tuple<rstring name,int32 age,map<rstring,int32> kv>`
const engineTestTupleJSON = `{"name":"IBM","age":30,"kv":{"a":1,"b":2}}`

func newTestTuple(t *testing.T) *jsontuple.Tuple {
	t.Helper()
	tuple, err := jsontuple.New(engineTestTupleJSON, engineTestSchema)
	require.NoError(t, err)
	return tuple
}

func TestEvalPredicateCachesAcrossCalls(t *testing.T) {
	eng := engine.New(nil)
	tuple := newTestTuple(t)

	require.Equal(t, 0, eng.CacheSize())

	got, code := eng.EvalPredicate(`name == "IBM"`, tuple)
	require.Equal(t, errcode.AllClear, code)
	require.True(t, got)
	require.Equal(t, 1, eng.CacheSize())

	got, code = eng.EvalPredicate(`name == "IBM"`, tuple)
	require.Equal(t, errcode.AllClear, code)
	require.True(t, got)
	require.Equal(t, 1, eng.CacheSize(), "second call should hit the cache, not grow it")
}

func TestEvalPredicateClearCacheForcesRecompile(t *testing.T) {
	eng := engine.New(nil)
	tuple := newTestTuple(t)

	_, code := eng.EvalPredicate("age > 1", tuple)
	require.Equal(t, errcode.AllClear, code)
	require.Equal(t, 1, eng.CacheSize())

	eng.ClearCache()
	require.Equal(t, 0, eng.CacheSize())

	_, code = eng.EvalPredicate("age > 1", tuple)
	require.Equal(t, errcode.AllClear, code)
	require.Equal(t, 1, eng.CacheSize())
}

func TestEvalPredicatePropagatesCompileError(t *testing.T) {
	eng := engine.New(nil)
	tuple := newTestTuple(t)

	_, code := eng.EvalPredicate("bogus == 1", tuple)
	require.Equal(t, errcode.LHSAttributeNotFound, code)
	require.Equal(t, 0, eng.CacheSize(), "a failed compile must not pollute the cache")
}

func TestGetTupleAttributeValue(t *testing.T) {
	eng := engine.New(nil)
	tuple := newTestTuple(t)

	v, code := eng.GetTupleAttributeValue(tuple, `kv["b"]`)
	require.Equal(t, errcode.AllClear, code)
	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestGetTupleAttributeValueUnknownAttribute(t *testing.T) {
	eng := engine.New(nil)
	tuple := newTestTuple(t)

	_, code := eng.GetTupleAttributeValue(tuple, "bogus")
	require.True(t, code.IsError())
}
