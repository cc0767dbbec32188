// Package plan defines the EvaluationPlan data model: subexpression ids,
// the fixed six-item block layout, and the immutable plan itself.
package plan

import (
	"fmt"
	"sort"
	"strings"
)

// SubexprID is a two-level dotted-decimal id: L numbers independent
// subexpression groups, S numbers members inside a nested-parenthesis
// group. Ids sort lexicographically into evaluation order, which Less
// below implements directly on the (L, S) pair rather than on a
// formatted string.
type SubexprID struct {
	L int
	S int
}

// String renders the id as "L.S", e.g. "1.1".
func (id SubexprID) String() string {
	return fmt.Sprintf("%d.%d", id.L, id.S)
}

// Less reports whether id sorts before other.
func (id SubexprID) Less(other SubexprID) bool {
	if id.L != other.L {
		return id.L < other.L
	}
	return id.S < other.S
}

// LogicalOp is "&&", "||", or "" (no following operator — final block in
// a subexpression, or final subexpression group inter-list entry n/a).
type LogicalOp string

const (
	And  LogicalOp = "&&"
	Or   LogicalOp = "||"
	None LogicalOp = ""
)

// Block is the fixed 6-item layout:
//
//	[lhsPath, lhsType, indexOrKey, opVerb, rhsLiteral, intraLogicalOp]
//
// For a list<tuple<...>> subexpression, IndexOrKey holds the list index,
// OpVerb holds the start byte offset and RHSLiteral holds the end byte
// offset of the nested subexpression substring in the original expression
// string (LOTStart/LOTEnd expose those parsed back out as ints).
type Block struct {
	LHSPath        string
	LHSType        string
	IndexOrKey     string
	OpVerb         string
	RHSLiteral     string
	IntraLogicalOp LogicalOp

	// IsListOfTuple marks a block produced for a list<tuple<...>>
	// attribute; OpVerb/RHSLiteral are byte offsets, not operator/value
	// text, and LOTStart/LOTEnd carry their parsed form.
	IsListOfTuple bool
	LOTStart      int
	LOTEnd        int
}

// Layout is the ordered sequence of blocks making up one subexpression.
type Layout []Block

// EvaluationPlan is the compiled, immutable representation of an
// expression, ready for repeated evaluation against tuples sharing its
// schema. It is never mutated after Compile returns it.
type EvaluationPlan struct {
	// Expr is the original expression string (diagnostic + LOT
	// recursion source for byte-offset substring extraction).
	Expr string

	// SchemaString is the canonical schema string this plan was
	// compiled against (the cache's identity guard).
	SchemaString string

	Subexpressions map[SubexprID]Layout

	// SubexpressionKeys is Subexpressions' keys, sorted into evaluation
	// order.
	SubexpressionKeys []SubexprID

	// IntraNestedLogical holds, for each non-final member of a nested
	// group, the logical operator joining it to the next member.
	IntraNestedLogical map[SubexprID]LogicalOp

	// InterLogical has one fewer entry than the number of distinct L
	// values in SubexpressionKeys; it is homogeneous (all && or all ||).
	InterLogical []LogicalOp
}

// NewEvaluationPlan assembles a plan from its parts, sorting the
// subexpression keys into lexicographic (L, S) order.
func NewEvaluationPlan(expr, schemaString string, subexprs map[SubexprID]Layout, intraNested map[SubexprID]LogicalOp, interLogical []LogicalOp) *EvaluationPlan {
	keys := make([]SubexprID, 0, len(subexprs))
	for k := range subexprs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	return &EvaluationPlan{
		Expr:               expr,
		SchemaString:       schemaString,
		Subexpressions:     subexprs,
		SubexpressionKeys:  keys,
		IntraNestedLogical: intraNested,
		InterLogical:       interLogical,
	}
}

// GroupCounts returns, for each distinct L present in SubexpressionKeys,
// how many S members that group has; a count above one marks a nested
// group.
func (p *EvaluationPlan) GroupCounts() map[int]int {
	counts := make(map[int]int)
	for _, id := range p.SubexpressionKeys {
		counts[id.L]++
	}
	return counts
}

// String renders a deterministic debug dump of the plan, used by golden
// snapshot tests (schema/plan round-trip fidelity) rather than by the
// engine itself.
func (p *EvaluationPlan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expr: %s\n", p.Expr)
	fmt.Fprintf(&b, "schema: %s\n", p.SchemaString)
	fmt.Fprintf(&b, "interLogical: %v\n", p.InterLogical)
	for _, id := range p.SubexpressionKeys {
		fmt.Fprintf(&b, "subexpr %s", id)
		if op, ok := p.IntraNestedLogical[id]; ok {
			fmt.Fprintf(&b, " (nested, next=%s)", op)
		}
		b.WriteString(":\n")
		for _, blk := range p.Subexpressions[id] {
			fmt.Fprintf(&b, "  %+v\n", blk)
		}
	}
	return b.String()
}
