package eval

import (
	"predeval/compiler"
	"predeval/errcode"
	"predeval/tupleview"
)

// ResolveValue navigates from tuple to the attribute described by
// resolved (as produced by compiler.ResolveAttribute), applying its
// index/key if present. It is the navigation step behind the standalone
// attribute fetcher; predicate clause evaluation uses resolveLHS, which
// performs the same steps on a plan.Block.
func ResolveValue(tuple tupleview.TupleView, resolved compiler.ResolvedAttribute) (tupleview.TupleView, errcode.Code) {
	v, err := navigatePath(tuple, resolved.Path)
	if err != nil {
		return nil, errcode.LHSAttributeNotFound
	}
	if resolved.IndexOrKey == "" {
		return v, errcode.AllClear
	}
	switch v.MetaType() {
	case tupleview.List:
		return indexList(v, resolved.IndexOrKey)
	case tupleview.Map:
		return lookupMap(v, resolved.IndexOrKey)
	default:
		return nil, errcode.NotACollectionAtEvalTime
	}
}
