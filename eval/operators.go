package eval

import (
	"math"
	"strconv"
	"strings"

	"predeval/errcode"
	"predeval/plan"
	"predeval/tupleview"
)

// dispatchOperator resolves blk's operator verb to its handler and
// evaluates it against lhs.
func dispatchOperator(blk plan.Block, lhs tupleview.TupleView) (bool, errcode.Code) {
	if strings.Contains(blk.OpVerb, " ") {
		return evalArithmetic(blk, lhs)
	}

	switch blk.OpVerb {
	case "==", "!=", "<", "<=", ">", ">=":
		return evalRelational(blk.OpVerb, lhs, blk.RHSLiteral)
	case "contains", "notContains", "containsCI", "notContainsCI":
		return evalContains(blk.OpVerb, lhs, blk.RHSLiteral)
	case "startsWith", "endsWith", "notStartsWith", "notEndsWith",
		"startsWithCI", "endsWithCI", "notStartsWithCI", "notEndsWithCI":
		return evalSubstring(blk.OpVerb, lhs, blk.RHSLiteral)
	case "equalsCI", "notEqualsCI":
		return evalEqualityCI(blk.OpVerb, lhs, blk.RHSLiteral)
	case "in", "inCI":
		return evalMembership(blk.OpVerb, lhs, blk.RHSLiteral)
	case "sizeEQ", "sizeNE", "sizeLT", "sizeLE", "sizeGT", "sizeGE":
		return evalSize(blk.OpVerb, lhs, blk.RHSLiteral)
	default:
		return false, errcode.InvalidOperatorAtEvalTime
	}
}

// evalRelational compares lhs's own value against the parsed rhsLit using
// verb.
func evalRelational(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	cmp, code := compareToLiteral(lhs, rhsLit)
	if code != errcode.AllClear {
		return false, code
	}
	return applyCmp(verb, cmp)
}

func applyCmp(verb string, cmp int) (bool, errcode.Code) {
	switch verb {
	case "==":
		return cmp == 0, errcode.AllClear
	case "!=":
		return cmp != 0, errcode.AllClear
	case "<":
		return cmp < 0, errcode.AllClear
	case "<=":
		return cmp <= 0, errcode.AllClear
	case ">":
		return cmp > 0, errcode.AllClear
	case ">=":
		return cmp >= 0, errcode.AllClear
	default:
		return false, errcode.InvalidOperatorAtEvalTime
	}
}

// compareToLiteral compares lhs's value against rhsLit, parsed according
// to lhs's own meta type, returning a three-way comparison.
func compareToLiteral(lhs tupleview.TupleView, rhsLit string) (int, errcode.Code) {
	mt := lhs.MetaType()
	switch {
	case mt == tupleview.Boolean:
		lv, _ := lhs.AsBool()
		rv := rhsLit == "true"
		return boolCmp(lv, rv), errcode.AllClear
	case mt.IsFloat():
		lv, _ := lhs.AsFloat()
		rv, err := strconv.ParseFloat(rhsLit, 64)
		if err != nil {
			return 0, errcode.RHSValueNoMatchForFloatLHSType
		}
		return floatCmp(lv, rv), errcode.AllClear
	case mt.IsUnsigned():
		lv, _ := lhs.AsUint()
		rv, err := strconv.ParseUint(rhsLit, 10, 64)
		if err != nil {
			return 0, errcode.RHSValueNoMatchForUintLHSType
		}
		return uintCmp(lv, rv), errcode.AllClear
	case mt.IsNumeric():
		lv, _ := lhs.AsInt()
		rv, err := strconv.ParseInt(rhsLit, 10, 64)
		if err != nil {
			return 0, errcode.RHSValueNoMatchForIntLHSType
		}
		return intCmp(lv, rv), errcode.AllClear
	case mt == tupleview.RString || mt == tupleview.UString || mt == tupleview.BString:
		lv, _ := lhs.AsString()
		if lf, lok := strconv.ParseFloat(lv, 64); lok == nil {
			if rf, rok := strconv.ParseFloat(rhsLit, 64); rok == nil {
				return floatCmp(lf, rf), errcode.AllClear
			}
		}
		return strings.Compare(lv, rhsLit), errcode.AllClear
	default:
		return 0, errcode.UnsupportedLHSTypeForComparison
	}
}

func intCmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func uintCmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func floatCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

// evalArithmetic splits blk.OpVerb back into "<op> <operand> <postOp>",
// computes lhs <op> operand, and compares the result against
// blk.RHSLiteral using postOp.
func evalArithmetic(blk plan.Block, lhs tupleview.TupleView) (bool, errcode.Code) {
	parts := strings.Fields(blk.OpVerb)
	if len(parts) != 3 {
		return false, errcode.InvalidOperatorAtEvalTime
	}
	op, operandLit, postOp := parts[0], parts[1], parts[2]
	mt := lhs.MetaType()

	switch {
	case mt.IsFloat():
		lv, _ := lhs.AsFloat()
		operand, err := strconv.ParseFloat(operandLit, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForFloatLHSType
		}
		var res float64
		switch op {
		case "+":
			res = lv + operand
		case "-":
			res = lv - operand
		case "*":
			res = lv * operand
		case "/":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = lv / operand
		case "%":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = math.Mod(lv, operand)
		default:
			return false, errcode.InvalidOperatorAtEvalTime
		}
		rv, err := strconv.ParseFloat(blk.RHSLiteral, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForFloatLHSType
		}
		return applyCmp(postOp, floatCmp(res, rv))

	case mt.IsUnsigned():
		lv, _ := lhs.AsUint()
		operand, err := strconv.ParseUint(operandLit, 10, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForUintLHSType
		}
		var res uint64
		switch op {
		case "+":
			res = lv + operand
		case "-":
			res = lv - operand
		case "*":
			res = lv * operand
		case "/":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = lv / operand
		case "%":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = lv % operand
		default:
			return false, errcode.InvalidOperatorAtEvalTime
		}
		rv, err := strconv.ParseUint(blk.RHSLiteral, 10, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForUintLHSType
		}
		return applyCmp(postOp, uintCmp(res, rv))

	default:
		lv, _ := lhs.AsInt()
		operand, err := strconv.ParseInt(operandLit, 10, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForIntLHSType
		}
		var res int64
		switch op {
		case "+":
			res = lv + operand
		case "-":
			res = lv - operand
		case "*":
			res = lv * operand
		case "/":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = lv / operand
		case "%":
			if operand == 0 {
				return false, errcode.DivideByZero
			}
			res = lv % operand
		default:
			return false, errcode.InvalidOperatorAtEvalTime
		}
		rv, err := strconv.ParseInt(blk.RHSLiteral, 10, 64)
		if err != nil {
			return false, errcode.RHSValueNoMatchForIntLHSType
		}
		return applyCmp(postOp, intCmp(res, rv))
	}
}

// evalContains checks whether lhs has a member equal to rhsLit, honoring
// the notXxx/XxxCI variants encoded in verb. For a string LHS this is a
// substring test; for a map LHS it is membership over the map's keys;
// for a list or set LHS it is membership over the collection's elements.
func evalContains(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	ci := strings.HasSuffix(verb, "CI")
	neg := strings.HasPrefix(verb, "not")

	var found bool
	switch lhs.MetaType() {
	case tupleview.RString, tupleview.UString, tupleview.BString:
		lv, _ := lhs.AsString()
		if ci {
			found = strings.Contains(strings.ToLower(lv), strings.ToLower(rhsLit))
		} else {
			found = strings.Contains(lv, rhsLit)
		}
	case tupleview.Map:
		pairs, err := lhs.IteratePairs()
		if err != nil {
			return false, errcode.NotACollectionAtEvalTime
		}
		for _, p := range pairs {
			if elementMatches(p.Key, rhsLit, ci) {
				found = true
				break
			}
		}
	default:
		elems, err := lhs.Iterate()
		if err != nil {
			return false, errcode.NotACollectionAtEvalTime
		}
		for _, e := range elems {
			if elementMatches(e, rhsLit, ci) {
				found = true
				break
			}
		}
	}

	if neg {
		found = !found
	}
	return found, errcode.AllClear
}

// elementMatches compares a collection element against a literal,
// dispatched by the element's own meta type.
func elementMatches(e tupleview.TupleView, lit string, ci bool) bool {
	switch {
	case e.MetaType() == tupleview.Boolean:
		v, _ := e.AsBool()
		return v == (lit == "true")
	case e.MetaType() == tupleview.RString || e.MetaType() == tupleview.UString || e.MetaType() == tupleview.BString:
		v, _ := e.AsString()
		if ci {
			return strings.EqualFold(v, lit)
		}
		return v == lit
	case e.MetaType().IsFloat():
		v, _ := e.AsFloat()
		f, err := strconv.ParseFloat(lit, 64)
		return err == nil && v == f
	case e.MetaType().IsUnsigned():
		v, _ := e.AsUint()
		u, err := strconv.ParseUint(lit, 10, 64)
		return err == nil && v == u
	case e.MetaType().IsNumeric():
		v, _ := e.AsInt()
		i, err := strconv.ParseInt(lit, 10, 64)
		return err == nil && v == i
	default:
		return false
	}
}

// evalSubstring implements the startsWith/endsWith family for a string
// lhs.
func evalSubstring(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	v, err := lhs.AsString()
	if err != nil {
		return false, errcode.SubstringNotSupportedForNonStringLHSType
	}
	ci := strings.Contains(verb, "CI")
	neg := strings.HasPrefix(verb, "not")

	base, lit := v, rhsLit
	if ci {
		base, lit = strings.ToLower(base), strings.ToLower(lit)
	}

	var res bool
	if strings.Contains(strings.ToLower(verb), "startswith") {
		res = strings.HasPrefix(base, lit)
	} else {
		res = strings.HasSuffix(base, lit)
	}
	if neg {
		res = !res
	}
	return res, errcode.AllClear
}

// evalEqualityCI implements equalsCI/notEqualsCI.
func evalEqualityCI(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	v, err := lhs.AsString()
	if err != nil {
		return false, errcode.EqualityCINotSupportedForNonStringLHSType
	}
	eq := strings.EqualFold(v, rhsLit)
	if verb == "notEqualsCI" {
		eq = !eq
	}
	return eq, errcode.AllClear
}

// evalMembership implements in/inCI: lhs is a scalar, rhsLit is the raw
// bracketed list-literal body captured verbatim by the compiler's
// dedicated list mini-parser.
func evalMembership(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	ci := strings.HasSuffix(verb, "CI")
	for _, part := range splitListLiteral(rhsLit) {
		if elementMatches(lhs, unquote(part), ci) {
			return true, errcode.AllClear
		}
	}
	return false, errcode.AllClear
}

// evalSize implements sizeEQ/NE/LT/LE/GT/GE. For a collection lhs it
// compares the element/pair count against rhsLit. For a scalar numeric
// lhs (a plain numeric attribute such as age sizeEQ 30, or an indexed
// element such as kv["b"] sizeEQ 2 where kv["b"] is itself a number)
// there is no count to take, so the comparison degenerates to the
// ordinary relational comparison the verb implies.
func evalSize(verb string, lhs tupleview.TupleView, rhsLit string) (bool, errcode.Code) {
	var n int
	switch lhs.MetaType() {
	case tupleview.List, tupleview.Set:
		elems, err := lhs.Iterate()
		if err != nil {
			return false, errcode.NotACollectionAtEvalTime
		}
		n = len(elems)
	case tupleview.Map:
		pairs, err := lhs.IteratePairs()
		if err != nil {
			return false, errcode.NotACollectionAtEvalTime
		}
		n = len(pairs)
	default:
		return evalRelational(sizeVerbToRelational(verb), lhs, rhsLit)
	}

	rv, err := strconv.Atoi(rhsLit)
	if err != nil {
		return false, errcode.RHSValueNoMatchForIntLHSType
	}
	return applyCmp(sizeVerbToRelational(verb), intCmp(int64(n), int64(rv)))
}

func sizeVerbToRelational(verb string) string {
	switch verb {
	case "sizeEQ":
		return "=="
	case "sizeNE":
		return "!="
	case "sizeLT":
		return "<"
	case "sizeLE":
		return "<="
	case "sizeGT":
		return ">"
	case "sizeGE":
		return ">="
	default:
		return ""
	}
}
