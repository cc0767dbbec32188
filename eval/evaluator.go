// Package eval walks a compiled plan.EvaluationPlan against a
// tupleview.TupleView and produces a boolean verdict. Dispatch is
// type-directed, one function per operator family (mirroring the
// teacher's per-operator evaluation functions). Within one
// subexpression's layout evaluation short-circuits: && stops at the
// first false block, || stops at the first true one. Every subexpression
// of the plan is evaluated, and an error from any of them is returned,
// even when earlier results already settle the outcome; the results are
// then folded, each nested group to a single bool before it participates
// in the enclosing fold.
package eval

import (
	"predeval/errcode"
	"predeval/plan"
	"predeval/trace"
	"predeval/tupleview"
)

// Evaluate runs p against tuple, returning the predicate's boolean
// verdict. tr may be nil.
func Evaluate(p *plan.EvaluationPlan, tuple tupleview.TupleView, tr *trace.Tracer) (bool, errcode.Code) {
	groupResults := make(map[int][]bool)
	groupOrder := make(map[int][]int)

	for _, id := range p.SubexpressionKeys {
		layout := p.Subexpressions[id]
		result, code := evalLayout(layout, tuple, p.Expr)
		if code != errcode.AllClear {
			return false, code
		}
		groupResults[id.L] = append(groupResults[id.L], result)
		groupOrder[id.L] = append(groupOrder[id.L], id.S)
		if tr != nil {
			tr.Subexpression(p.Expr, id.String(), result)
		}
	}

	finalResults := make([]bool, 0, len(p.SubexpressionKeys))
	seenL := make(map[int]bool)
	for _, id := range p.SubexpressionKeys {
		if seenL[id.L] {
			continue
		}
		seenL[id.L] = true
		finalResults = append(finalResults, foldGroup(p, id.L, groupResults[id.L]))
	}

	result := foldLogical(finalResults, p.InterLogical)
	if tr != nil {
		tr.Evaluate(p.Expr, result, errcode.AllClear.String())
	}
	return result, errcode.AllClear
}

// foldGroup combines a single L group's members into one bool. A group
// with one member is that member's own result; a nested group (more than
// one member) folds left-to-right using the group's recorded
// intra-nested logical operators. All members were already evaluated by
// the caller; no member is skipped.
func foldGroup(p *plan.EvaluationPlan, L int, members []bool) bool {
	if len(members) == 1 {
		return members[0]
	}

	acc := members[0]
	for s := 2; s <= len(members); s++ {
		id := plan.SubexprID{L: L, S: s - 1}
		op := p.IntraNestedLogical[id]
		next := members[s-1]
		if op == plan.Or {
			acc = acc || next
		} else {
			acc = acc && next
		}
	}
	return acc
}

// foldLogical combines per-group results left to right using ops, which
// has exactly len(results)-1 entries.
func foldLogical(results []bool, ops []plan.LogicalOp) bool {
	if len(results) == 0 {
		return true
	}
	acc := results[0]
	for i, op := range ops {
		next := results[i+1]
		if op == plan.Or {
			acc = acc || next
		} else {
			acc = acc && next
		}
		// Short-circuit: once acc is settled for an all-&& or all-||
		// chain the remaining members still need their own errors
		// surfaced by evalLayout above, so there's nothing left to skip
		// here beyond the boolean fold itself.
	}
	return acc
}

// evalLayout evaluates every block in a flat-conjunction layout,
// combining them short-circuit left-to-right via each block's
// IntraLogicalOp.
func evalLayout(layout plan.Layout, tuple tupleview.TupleView, expr string) (bool, errcode.Code) {
	if len(layout) == 0 {
		return true, errcode.AllClear
	}

	acc, code := evalBlock(layout[0], tuple, expr)
	if code != errcode.AllClear {
		return false, code
	}

	for i := 1; i < len(layout); i++ {
		prevOp := layout[i-1].IntraLogicalOp
		if prevOp == plan.And && !acc {
			return false, errcode.AllClear
		}
		if prevOp == plan.Or && acc {
			return true, errcode.AllClear
		}

		next, code := evalBlock(layout[i], tuple, expr)
		if code != errcode.AllClear {
			return false, code
		}
		if prevOp == plan.Or {
			acc = acc || next
		} else {
			acc = acc && next
		}
	}

	return acc, errcode.AllClear
}

// evalBlock resolves one block's LHS value (applying any index/key) and
// dispatches to the handler implied by its operator verb.
func evalBlock(blk plan.Block, tuple tupleview.TupleView, expr string) (bool, errcode.Code) {
	if blk.IsListOfTuple {
		return evalListOfTuple(blk, tuple, expr)
	}

	lhs, code := resolveLHS(blk, tuple)
	if code != errcode.AllClear {
		return false, code
	}

	return dispatchOperator(blk, lhs)
}

// resolveLHS navigates from the tuple root to the attribute named by
// blk.LHSPath, then applies blk.IndexOrKey if present.
func resolveLHS(blk plan.Block, tuple tupleview.TupleView) (tupleview.TupleView, errcode.Code) {
	v, err := navigatePath(tuple, blk.LHSPath)
	if err != nil {
		return nil, errcode.LHSAttributeNotFound
	}
	if blk.IndexOrKey == "" {
		return v, errcode.AllClear
	}
	switch v.MetaType() {
	case tupleview.List:
		return indexList(v, blk.IndexOrKey)
	case tupleview.Map:
		return lookupMap(v, blk.IndexOrKey)
	default:
		return nil, errcode.NotACollectionAtEvalTime
	}
}

// navigatePath walks a dotted attribute path from root, descending
// through nested tuples one segment at a time.
func navigatePath(root tupleview.TupleView, path string) (tupleview.TupleView, error) {
	cur := root
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			seg := path[start:i]
			next, err := cur.AttributeValue(seg)
			if err != nil {
				return nil, err
			}
			cur = next
			start = i + 1
		}
	}
	return cur, nil
}
