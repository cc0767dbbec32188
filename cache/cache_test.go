package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/errcode"
	"predeval/plan"
)

func TestCacheMissThenHit(t *testing.T) {
	c := New()

	_, code, hit := c.Lookup(`name == "IBM"`, "tuple<rstring name>")
	require.False(t, hit)
	require.Equal(t, errcode.AllClear, code)

	p := plan.NewEvaluationPlan(`name == "IBM"`, "tuple<rstring name>", nil, nil, nil)
	c.Store(`name == "IBM"`, p)

	got, code, hit := c.Lookup(`name == "IBM"`, "tuple<rstring name>")
	require.True(t, hit)
	require.Equal(t, errcode.AllClear, code)
	require.Same(t, p, got)
	require.Equal(t, 1, c.Len())
}

func TestCacheSchemaMismatch(t *testing.T) {
	c := New()
	p := plan.NewEvaluationPlan(`name == "IBM"`, "tuple<rstring name>", nil, nil, nil)
	c.Store(`name == "IBM"`, p)

	_, code, hit := c.Lookup(`name == "IBM"`, "tuple<rstring name,int32 age>")
	require.True(t, hit)
	require.Equal(t, errcode.SchemaMismatch, code)
}

func TestCacheClear(t *testing.T) {
	c := New()
	p := plan.NewEvaluationPlan(`age > 1`, "tuple<int32 age>", nil, nil, nil)
	c.Store("age > 1", p)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())

	_, _, hit := c.Lookup("age > 1", "tuple<int32 age>")
	require.False(t, hit)
}
