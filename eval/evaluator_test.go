package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/compiler"
	"predeval/errcode"
	"predeval/eval"
	"predeval/schema"
	"predeval/tupleview/jsontuple"
)

const evalTestSchema = `tuple<rstring name,rstring code,int32 age,boolean active,list<int32> marks,set<rstring> tags,map<rstring,int32> kv,list<tuple<rstring sku,int32 qty>> items>`

const evalTestTupleJSON = `{
	"name": "IBM",
	"code": "100",
	"age": 30,
	"active": true,
	"marks": [10, 20, 30],
	"tags": ["gold", "silver"],
	"kv": {"a": 1, "b": 2},
	"items": [{"sku": "A1", "qty": 5}, {"sku": "B2", "qty": 0}]
}`

func evalExpr(t *testing.T, expr string) (bool, errcode.Code) {
	t.Helper()
	paths, code := schema.Parse(evalTestSchema)
	require.Equal(t, errcode.AllClear, code)

	p, code := compiler.Compile(expr, evalTestSchema, paths)
	if code != errcode.AllClear {
		return false, code
	}

	tuple, err := jsontuple.New(evalTestTupleJSON, evalTestSchema)
	require.NoError(t, err)

	return eval.Evaluate(p, tuple, nil)
}

func TestEvaluateScalarAndRelational(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`name == "IBM"`, true},
		{`name == "MSFT"`, false},
		{"age > 25", true},
		{"age <= 25", false},
		{"active == true", true},
		{"active != false", true},
		{`code < "99"`, false},
		{`code > "99"`, true},
		{`name < "99"`, false},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateListAndSetOperators(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{"marks contains 20", true},
		{"marks contains 99", false},
		{"marks notContains 99", true},
		{"marks sizeEQ 3", true},
		{"marks sizeGT 2", true},
		{"marks[0] == 10", true},
		{`tags contains "gold"`, true},
		{`tags contains "bronze"`, false},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateContainsOnStringIsSubstring(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`name contains "B"`, true},
		{`name contains "Z"`, false},
		{`name containsCI "ibm"`, true},
		{`name notContains "Q"`, true},
		{`name containsCI "int" && marks contains 4`, false},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateContainsOnMapIsKeyMembership(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`kv contains "a"`, true},
		{`kv contains "z"`, false},
		{`kv notContains "c"`, true},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateMapContainsCompilesThenFailsOnBadIndex(t *testing.T) {
	_, code := evalExpr(t, `kv notContains "c" && marks[5] > 0`)
	require.Equal(t, errcode.InvalidIndexForLHSListAttribute, code)
}

func TestEvaluateMapLookupAndDegenerateSize(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`kv["a"] == 1`, true},
		{`kv["b"] == 2`, true},
		{`kv["a"] sizeEQ 1`, true},
		{`kv["a"] sizeNE 2`, true},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateMembershipAndArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`name in ["IBM","AAPL"]`, true},
		{`name in ["MSFT","AAPL"]`, false},
		{"age + 5 == 35", true},
		{"age - 10 == 20", true},
		{"age % 3 == 0", true},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateLogicalFolding(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`(name == "IBM") && (age > 25)`, true},
		{`(name == "IBM") && (age < 25)`, false},
		{`name == "MSFT" || age == 30`, true},
		{`(age > 25 && active == true) || name == "MSFT"`, true},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateListOfTupleNestedPredicate(t *testing.T) {
	cases := []struct {
		expr string
		want bool
	}{
		{`items[0](sku == "A1")`, true},
		{`items[0](qty > 0)`, true},
		{`items[1](qty > 0)`, false},
	}
	for _, tc := range cases {
		got, code := evalExpr(t, tc.expr)
		require.Equal(t, errcode.AllClear, code, tc.expr)
		require.Equal(t, tc.want, got, tc.expr)
	}
}

func TestEvaluateUnknownAttributeErrors(t *testing.T) {
	_, code := evalExpr(t, "bogus == 1")
	require.Equal(t, errcode.LHSAttributeNotFound, code)
}
