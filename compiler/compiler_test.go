package compiler

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"predeval/errcode"
	"predeval/schema"
)

const testSchema = "tuple<rstring name,int32 age,boolean active,list<int32> marks,set<rstring> tags,map<rstring,int32> kv,list<tuple<rstring sku,int32 qty>> items>"

func mustPaths(t *testing.T) *schema.PathMap {
	t.Helper()
	m, code := schema.Parse(testSchema)
	require.Equal(t, errcode.AllClear, code)
	return m
}

func TestCompileValidExpressions(t *testing.T) {
	paths := mustPaths(t)

	cases := []string{
		`name == "IBM"`,
		"age > 25",
		"active == true",
		"marks contains 20",
		"marks notContains 99",
		"marks sizeEQ 3",
		"marks[1] == 20",
		`tags contains "gold"`,
		`name containsCI "bm"`,
		`kv notContains "c"`,
		`kv["a"] == 1`,
		`kv["a"] sizeEQ 1`,
		`name in ["IBM","AAPL"]`,
		"age + 5 == 35",
		`(name == "IBM") && (age > 25)`,
		`name == "MSFT" || age == 30`,
		`items[0](sku == "A1")`,
	}

	for _, expr := range cases {
		expr := expr
		t.Run(expr, func(t *testing.T) {
			p, code := Compile(expr, testSchema, paths)
			require.Equal(t, errcode.AllClear, code, "expr %q", expr)
			require.NotNil(t, p)
			require.Equal(t, testSchema, p.SchemaString)
		})
	}
}

func TestCompileSnapshotPlanLayout(t *testing.T) {
	paths := mustPaths(t)
	p, code := Compile(`(name == "IBM") && (age > 25 || marks contains 20)`, testSchema, paths)
	require.Equal(t, errcode.AllClear, code)
	snaps.MatchSnapshot(t, p.String())
}

func TestCompileErrors(t *testing.T) {
	paths := mustPaths(t)

	cases := []struct {
		name string
		expr string
		code errcode.Code
	}{
		{"empty", "   ", errcode.EmptyExpression},
		{"unknown attribute", "bogus == 1", errcode.LHSAttributeNotFound},
		{"unbalanced paren", `(name == "IBM"`, errcode.UnbalancedParenthesis},
		{"bad operator", `name ~ "IBM"`, errcode.InvalidOperationVerb},
		{"relational on list", "marks == 1", errcode.RelationalNotSupportedForListLHSType},
		{"relational on map", `kv == 1`, errcode.RelationalNotSupportedForMapLHSType},
		{"arithmetic on string", `name + 1 == 2`, errcode.ArithmeticNotSupportedForStringLHSType},
		{"arithmetic on boolean", "active + 1 == 2", errcode.ArithmeticNotSupportedForBooleanLHSType},
		{"contains on boolean", "active contains true", errcode.ContainsNotSupportedForBooleanLHSType},
		{"contains on numeric", "age contains 1", errcode.ContainsNotSupportedForNumericLHSType},
		{"substring on numeric", `age startsWith "2"`, errcode.SubstringNotSupportedForNonStringLHSType},
		{"membership on list", `marks in ["1"]`, errcode.MembershipNotSupportedForListLHSType},
		{"mixed inter logical", `(name == "IBM") && (age == 1) || (active == true)`, errcode.MixedLogicalOperatorsFoundInInterSubexpressions},
		{"mixed intra logical", `name == "IBM" && age == 1 || age == 2`, errcode.MixedLogicalOperatorsFoundInSubexpression},
		{"trailing garbage", `name == "IBM" )`, errcode.UnbalancedParenthesis},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, code := Compile(tc.expr, testSchema, paths)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestCompileSizeDegeneratesToEqualityOnScalar(t *testing.T) {
	paths := mustPaths(t)
	p, code := Compile(`age sizeEQ 30`, testSchema, paths)
	require.Equal(t, errcode.AllClear, code)
	require.NotNil(t, p)
}
