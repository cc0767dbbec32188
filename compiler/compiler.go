// Package compiler implements the validator/compiler stage: it parses a
// predicate expression against a schema's attribute path map and, if
// every clause type-checks, emits an immutable plan.EvaluationPlan ready
// for repeated evaluation. Parsing runs in two passes: checkBalance
// verifies bracket and quote structure over the whole expression, then a
// recursive-descent pass walks top-level groups, nested groups, and
// conjuncts, resolving each LHS attribute, checking its declared type
// against the matched operator family, and parsing the RHS literal with
// the grammar that type implies.
package compiler

import (
	"strconv"
	"strings"

	"predeval/errcode"
	"predeval/plan"
	"predeval/schema"
)

// Compile validates expr against paths and, on success, returns an
// immutable evaluation plan. schemaString is stored on the plan for the
// cache's identity guard.
func Compile(expr, schemaString string, paths *schema.PathMap) (p *plan.EvaluationPlan, code errcode.Code) {
	defer func() {
		if r := recover(); r != nil {
			p, code = nil, errcode.InvalidRHSListLiteral
		}
	}()

	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, errcode.EmptyExpression
	}

	if c := checkBalance(trimmed); c != errcode.AllClear {
		return nil, c
	}

	b := &builder{
		c:              &cursor{s: trimmed},
		paths:          paths,
		subexprs:       make(map[plan.SubexprID]plan.Layout),
		intraNested:    make(map[plan.SubexprID]plan.LogicalOp),
		nextL:          1,
	}

	if code := b.parseExpression(); code != errcode.AllClear {
		return nil, code
	}

	b.c.skipSpaces()
	if !b.c.eof() {
		return nil, errcode.IncompleteExpressionTail
	}

	return plan.NewEvaluationPlan(trimmed, schemaString, b.subexprs, b.intraNested, b.interLogical), errcode.AllClear
}

// builder accumulates parse state across the whole expression.
type builder struct {
	c     *cursor
	paths *schema.PathMap

	subexprs    map[plan.SubexprID]plan.Layout
	intraNested map[plan.SubexprID]plan.LogicalOp
	interLogical []plan.LogicalOp

	nextL int
}

// parseExpression parses Group (InterOp Group)*, requiring every InterOp
// to agree.
func (b *builder) parseExpression() errcode.Code {
	if code := b.parseGroup(); code != errcode.AllClear {
		return code
	}
	for {
		b.c.skipSpaces()
		op, ok := peekLogicalOp(b.c)
		if !ok {
			return errcode.AllClear
		}
		if len(b.interLogical) > 0 && b.interLogical[len(b.interLogical)-1] != op {
			return errcode.MixedLogicalOperatorsFoundInInterSubexpressions
		}
		b.interLogical = append(b.interLogical, op)
		b.c.advance(len(string(op)))
		b.c.skipSpaces()
		if b.c.peekByte() == '(' && len(b.subexprs) > 0 {
			// a further top-level group may legally follow; nothing
			// special to do here, parseGroup below handles it.
		}
		if code := b.parseGroup(); code != errcode.AllClear {
			return code
		}
	}
}

// parseGroup parses one top-level group: either a parenthesized body
// (flat conjunction or nested group list) or a bare flat conjunction.
func (b *builder) parseGroup() errcode.Code {
	b.c.skipSpaces()
	if b.c.peekByte() != '(' {
		return b.parseFlatConjunctionGroup()
	}

	// Look ahead: is this "(" "(" ... a nested group list, or just a
	// parenthesized flat conjunction?
	save := b.c.pos
	b.c.advance(1)
	b.c.skipSpaces()
	if b.c.peekByte() == '(' {
		if code := b.parseNestedGroupList(); code != errcode.AllClear {
			return code
		}
		b.c.skipSpaces()
		if !b.c.consumePrefix(")") {
			return errcode.UnbalancedParenthesis
		}
		return errcode.AllClear
	}
	b.c.pos = save
	b.c.advance(1)
	code := b.parseFlatConjunction(b.nextL, 1)
	if code != errcode.AllClear {
		return code
	}
	b.nextL++
	b.c.skipSpaces()
	if !b.c.consumePrefix(")") {
		return errcode.UnbalancedParenthesis
	}
	return errcode.AllClear
}

// parseFlatConjunctionGroup parses a bare (unparenthesized) flat
// conjunction as one full subexpression group.
func (b *builder) parseFlatConjunctionGroup() errcode.Code {
	code := b.parseFlatConjunction(b.nextL, 1)
	if code != errcode.AllClear {
		return code
	}
	b.nextL++
	return errcode.AllClear
}

// parseNestedGroupList parses "(" FlatConjunction ")" (NestedOp "("
// FlatConjunction ")")*, assigning every member the same L and
// successive S values, and recording the homogeneous intra-nested
// logical operator linking each member to the next.
func (b *builder) parseNestedGroupList() errcode.Code {
	L := b.nextL
	b.nextL++
	s := 1

	if !b.c.consumePrefix("(") {
		return errcode.UnbalancedParenthesis
	}
	if code := b.parseFlatConjunction(L, s); code != errcode.AllClear {
		return code
	}
	b.c.skipSpaces()
	if !b.c.consumePrefix(")") {
		return errcode.UnbalancedParenthesis
	}

	var nestedOp plan.LogicalOp
	haveOp := false

	for {
		b.c.skipSpaces()
		op, ok := peekLogicalOp(b.c)
		if !ok {
			break
		}
		peekPos := b.c.pos + len(string(op))
		rest := b.c.s[peekPos:]
		rest = trimLeadingSpaces(rest)
		if !strings.HasPrefix(rest, "(") {
			break
		}

		if haveOp && nestedOp != op {
			return errcode.MixedLogicalOperatorsFoundInNestedGroup
		}
		nestedOp = op
		haveOp = true
		b.intraNested[plan.SubexprID{L: L, S: s}] = op

		b.c.advance(len(string(op)))
		b.c.skipSpaces()
		b.c.consumePrefix("(")
		s++
		if code := b.parseFlatConjunction(L, s); code != errcode.AllClear {
			return code
		}
		b.c.skipSpaces()
		if !b.c.consumePrefix(")") {
			return errcode.UnbalancedParenthesis
		}
	}

	return errcode.AllClear
}

// peekLogicalOp reports whether the cursor is positioned (after spaces
// already skipped by the caller) at "&&" or "||", without consuming it.
func peekLogicalOp(c *cursor) (plan.LogicalOp, bool) {
	if strings.HasPrefix(c.rest(), "&&") {
		return plan.And, true
	}
	if strings.HasPrefix(c.rest(), "||") {
		return plan.Or, true
	}
	return plan.None, false
}

// parseFlatConjunction parses Conjunct (IntraOp Conjunct)* into a single
// subexpression keyed by (L, S), enforcing a homogeneous intra-group
// logical operator.
func (b *builder) parseFlatConjunction(L, S int) errcode.Code {
	id := plan.SubexprID{L: L, S: S}
	var layout plan.Layout
	var groupOp plan.LogicalOp
	haveOp := false

	for {
		blk, code := b.parseConjunct()
		if code != errcode.AllClear {
			return code
		}

		b.c.skipSpaces()
		op, ok := peekLogicalOp(b.c)
		if ok {
			peekPos := b.c.pos + len(string(op))
			rest := trimLeadingSpaces(b.c.s[peekPos:])
			if strings.HasPrefix(rest, "(") {
				ok = false
			}
		}

		if !ok {
			blk.IntraLogicalOp = plan.None
			layout = append(layout, blk)
			break
		}

		if haveOp && groupOp != op {
			return errcode.MixedLogicalOperatorsFoundInSubexpression
		}
		groupOp = op
		haveOp = true
		blk.IntraLogicalOp = op
		layout = append(layout, blk)
		b.c.advance(len(string(op)))
	}

	b.subexprs[id] = layout
	return errcode.AllClear
}

// parseConjunct parses a single "<lhs><index/key?> <op> <rhs>" clause, or
// a list<tuple<...>> clause's "<lhs>[<idx>](<nested expr>)" form.
func (b *builder) parseConjunct() (plan.Block, errcode.Code) {
	b.c.skipSpaces()

	path, typ, ok := b.paths.LongestMatch(b.c.rest())
	if !ok {
		return plan.Block{}, errcode.LHSAttributeNotFound
	}
	b.c.advance(len(path))

	kind := classify(typ)

	var blk plan.Block
	blk.LHSPath = path
	blk.LHSType = typ

	switch kind {
	case kindListOfTuple:
		idx, code := parseListIndex(b.c)
		if code != errcode.AllClear {
			return plan.Block{}, code
		}
		blk.IndexOrKey = idx
		b.c.skipSpaces()
		start := b.c.pos
		if !b.c.consumePrefix("(") {
			return plan.Block{}, errcode.UnbalancedParenthesis
		}
		depth := 1
		for !b.c.eof() && depth > 0 {
			switch b.c.peekByte() {
			case '(':
				depth++
			case ')':
				depth--
			}
			b.c.advance(1)
		}
		if depth != 0 {
			return plan.Block{}, errcode.UnbalancedParenthesis
		}
		end := b.c.pos
		blk.IsListOfTuple = true
		blk.LOTStart = start
		blk.LOTEnd = end
		blk.OpVerb = strconv.Itoa(start)
		blk.RHSLiteral = strconv.Itoa(end)
		return blk, errcode.AllClear

	case kindList:
		if b.c.peekByte() == '[' {
			idx, code := parseListIndex(b.c)
			if code != errcode.AllClear {
				return plan.Block{}, code
			}
			blk.IndexOrKey = idx
			kind = classify(elementType(typ))
		}

	case kindMap:
		if b.c.peekByte() == '[' {
			keyKind := mapKeyKind(typ)
			key, code := parseMapKey(b.c, keyKind)
			if code != errcode.AllClear {
				return plan.Block{}, code
			}
			blk.IndexOrKey = key
			kind = classify(valueType(typ))
		}
	}

	b.c.skipSpaces()
	def, ok := matchOperator(b.c.rest())
	if !ok {
		return plan.Block{}, errcode.InvalidOperationVerb
	}

	if code := checkCompatibility(def.family, kind); code != errcode.AllClear {
		return plan.Block{}, code
	}

	b.c.advance(len(def.verb))

	if def.family == famArithmetic {
		return b.parseArithmeticClause(blk, def, kind)
	}

	rhsKind := kind
	if def.family == famContains {
		switch kind {
		case kindList, kindSet:
			rhsKind = classify(elementType(typ))
		case kindMap:
			rhsKind = mapKeyKind(typ)
		}
	}

	b.c.skipSpaces()
	rhs, code := parseRHSForFamily(b.c, def.family, rhsKind)
	if code != errcode.AllClear {
		return plan.Block{}, code
	}
	blk.OpVerb = def.verb
	blk.RHSLiteral = rhs
	return blk, errcode.AllClear
}

// parseArithmeticClause parses "<op> <operand> <postOp> <rhs>", folding
// the whole left-hand shape into a single OpVerb string of the form
// "<op> <operand> <postOp>" so the evaluator can split it back apart.
func (b *builder) parseArithmeticClause(blk plan.Block, def opDef, kind lhsKind) (plan.Block, errcode.Code) {
	if kind == kindBoolean {
		return plan.Block{}, errcode.ArithmeticNotSupportedForBooleanLHSType
	}
	if kind == kindString {
		return plan.Block{}, errcode.ArithmeticNotSupportedForStringLHSType
	}

	b.c.skipSpaces()
	operand, code := parseNumericRHS(b.c, kind)
	if code != errcode.AllClear {
		return plan.Block{}, code
	}

	b.c.skipSpaces()
	postOp, ok := matchRelationalPostOp(b.c.rest())
	if !ok {
		return plan.Block{}, errcode.ArithmeticPostOpNotRelational
	}
	if postOp != "==" && postOp != "!=" && kind == kindBoolean {
		return plan.Block{}, errcode.RelationalOrderingNotSupportedForBooleanLHSType
	}
	b.c.advance(len(postOp))

	b.c.skipSpaces()
	rhs, code := parseNumericRHS(b.c, kind)
	if code != errcode.AllClear {
		return plan.Block{}, code
	}

	blk.OpVerb = def.verb + " " + operand + " " + postOp
	blk.RHSLiteral = rhs
	return blk, errcode.AllClear
}

// parseRHSForFamily parses the RHS literal grammar appropriate to family
// and the (possibly index-resolved) LHS kind.
func parseRHSForFamily(c *cursor, family opFamily, kind lhsKind) (string, errcode.Code) {
	switch family {
	case famRelational:
		switch kind {
		case kindBoolean:
			return parseBooleanRHS(c)
		case kindInt, kindUint, kindFloat:
			return parseNumericRHS(c, kind)
		case kindString:
			return parseStringRHS(c)
		default:
			return "", errcode.UnsupportedLHSTypeForComparison
		}
	case famContains:
		switch kind {
		case kindInt, kindUint, kindFloat:
			return parseNumericRHS(c, kind)
		case kindBoolean:
			return parseBooleanRHS(c)
		default:
			return parseStringRHS(c)
		}
	case famSubstring, famEqualityCI:
		return parseStringRHS(c)
	case famMembership:
		return parseInListLiteral(c)
	case famSize:
		if kind == kindInt || kind == kindUint || kind == kindFloat {
			return parseNumericRHS(c, kind)
		}
		return parseSizeRHS(c)
	default:
		return "", errcode.InvalidOperationVerb
	}
}

// checkCompatibility rejects operator/LHS-kind pairs the spec does not
// legalize, returning the specific error code for the offending
// combination.
func checkCompatibility(family opFamily, kind lhsKind) errcode.Code {
	switch family {
	case famRelational:
		switch kind {
		case kindList:
			return errcode.RelationalNotSupportedForListLHSType
		case kindSet:
			return errcode.RelationalNotSupportedForSetLHSType
		case kindMap:
			return errcode.RelationalNotSupportedForMapLHSType
		case kindListOfTuple:
			return errcode.RelationalNotSupportedForTupleLHSType
		case kindUnsupported:
			return errcode.UnsupportedLHSTypeForComparison
		}
		return errcode.AllClear

	case famArithmetic:
		switch kind {
		case kindBoolean:
			return errcode.ArithmeticNotSupportedForBooleanLHSType
		case kindString:
			return errcode.ArithmeticNotSupportedForStringLHSType
		case kindList:
			return errcode.ArithmeticNotSupportedForListLHSType
		case kindSet:
			return errcode.ArithmeticNotSupportedForSetLHSType
		case kindMap:
			return errcode.ArithmeticNotSupportedForMapLHSType
		case kindUnsupported, kindListOfTuple:
			return errcode.UnsupportedLHSTypeForComparison
		}
		return errcode.AllClear

	case famContains:
		switch kind {
		case kindBoolean:
			return errcode.ContainsNotSupportedForBooleanLHSType
		case kindInt, kindUint, kindFloat:
			return errcode.ContainsNotSupportedForNumericLHSType
		case kindString, kindMap, kindList, kindSet:
			return errcode.AllClear
		default:
			return errcode.UnsupportedLHSTypeForComparison
		}

	case famSubstring:
		if kind != kindString {
			return errcode.SubstringNotSupportedForNonStringLHSType
		}
		return errcode.AllClear

	case famEqualityCI:
		if kind != kindString {
			return errcode.EqualityCINotSupportedForNonStringLHSType
		}
		return errcode.AllClear

	case famMembership:
		switch kind {
		case kindList:
			return errcode.MembershipNotSupportedForListLHSType
		case kindSet:
			return errcode.MembershipNotSupportedForSetLHSType
		case kindMap:
			return errcode.MembershipNotSupportedForMapLHSType
		case kindUnsupported, kindListOfTuple:
			return errcode.UnsupportedLHSTypeForComparison
		}
		return errcode.AllClear

	case famSize:
		switch kind {
		case kindBoolean:
			return errcode.SizeNotSupportedForBooleanLHSType
		case kindInt, kindUint, kindFloat:
			return errcode.AllClear // degenerates to direct scalar comparison
		case kindUnsupported:
			return errcode.UnsupportedLHSTypeForComparison
		}
		return errcode.AllClear
	}

	return errcode.InvalidOperationVerb
}
