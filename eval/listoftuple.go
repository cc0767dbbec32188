package eval

import (
	"strings"

	"predeval/compiler"
	"predeval/errcode"
	"predeval/plan"
	"predeval/schema"
	"predeval/tupleview"
)

// evalListOfTuple evaluates a list<tuple<...>> clause: it indexes into
// the list attribute, then compiles and evaluates the nested
// parenthesized expression (captured by byte offset at compile time)
// against that single element tuple's own schema. Each evaluation
// recompiles the nested expression rather than sharing a cached plan,
// since distinct elements of a list<tuple<...>> are not guaranteed to
// share an identical field order or type in every producer.
func evalListOfTuple(blk plan.Block, tuple tupleview.TupleView, expr string) (bool, errcode.Code) {
	listView, err := navigatePath(tuple, blk.LHSPath)
	if err != nil {
		return false, errcode.LHSAttributeNotFound
	}

	elemView, code := indexList(listView, blk.IndexOrKey)
	if code != errcode.AllClear {
		return false, code
	}

	inner := expr[blk.LOTStart:blk.LOTEnd]
	inner = strings.TrimPrefix(inner, "(")
	inner = strings.TrimSuffix(inner, ")")

	innerSchemaString := schema.Format(elemView)
	innerPaths, code := schema.Parse(innerSchemaString)
	if code != errcode.AllClear {
		return false, code
	}

	innerPlan, code := compiler.Compile(inner, innerSchemaString, innerPaths)
	if code != errcode.AllClear {
		return false, code
	}

	return Evaluate(innerPlan, elemView, nil)
}
