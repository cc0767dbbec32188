package compiler

import (
	"strconv"
	"strings"

	"predeval/errcode"
)

// parseBooleanRHS matches "true" or "false" followed by a space, ')', or
// end of input.
func parseBooleanRHS(c *cursor) (string, errcode.Code) {
	for _, lit := range []string{"true", "false"} {
		if strings.HasPrefix(c.rest(), lit) {
			after := c.rest()[len(lit):]
			if after == "" || after[0] == ' ' || after[0] == ')' {
				c.advance(len(lit))
				return lit, errcode.AllClear
			}
		}
	}
	return "", errcode.InvalidRHSBooleanLiteral
}

// parseNumericRHS parses a signed/unsigned integer or float literal
// according to k, enforcing: sign only for signed numeric kinds, exactly
// one decimal point iff k is float, no decimal point otherwise.
func parseNumericRHS(c *cursor, k lhsKind) (string, errcode.Code) {
	start := c.pos
	if c.peekByte() == '-' {
		if k == kindUint {
			return "", errcode.RHSValueNoMatchForUintLHSType
		}
		c.advance(1)
	}

	digitsStart := c.pos
	sawDot := false
	for !c.eof() {
		b := c.peekByte()
		if b >= '0' && b <= '9' {
			c.advance(1)
			continue
		}
		if b == '.' && k == kindFloat && !sawDot {
			sawDot = true
			c.advance(1)
			continue
		}
		break
	}

	if c.pos == digitsStart {
		c.pos = start
		if k == kindFloat {
			return "", errcode.RHSValueNoMatchForFloatLHSType
		}
		return "", errcode.RHSValueNoMatchForIntLHSType
	}

	if k == kindFloat && !sawDot {
		c.pos = start
		return "", errcode.RHSMissingDecimalPoint
	}

	return c.s[start:c.pos], errcode.AllClear
}

// parseStringRHS consumes a quoted literal, identifying the closing quote
// with the same heuristic as pass 1's quote-termination rule (closes
// when followed by ']', ')', "&&", "||", or end-of-input). The returned
// literal is unquoted.
func parseStringRHS(c *cursor) (string, errcode.Code) {
	if c.eof() {
		return "", errcode.RHSMissingQuote
	}
	q := c.peekByte()
	if q != '"' && q != '\'' {
		return "", errcode.RHSMissingQuote
	}
	c.advance(1)
	start := c.pos
	for !c.eof() {
		if c.peekByte() == q && quoteCloses(c.s, c.pos) {
			literal := c.s[start:c.pos]
			c.advance(1)
			return literal, errcode.AllClear
		}
		c.advance(1)
	}
	return "", errcode.RHSUnclosedQuote
}

// parseSizeRHS parses a non-negative decimal integer for the size
// operators.
func parseSizeRHS(c *cursor) (string, errcode.Code) {
	start := c.pos
	for !c.eof() && c.peekByte() >= '0' && c.peekByte() <= '9' {
		c.advance(1)
	}
	if c.pos == start {
		return "", errcode.RHSValueNoMatchForIntLHSType
	}
	return c.s[start:c.pos], errcode.AllClear
}

// parseMapKey parses a "[key]" suffix for map access, where the key
// grammar depends on the map's key kind.
func parseMapKey(c *cursor, keyKind lhsKind) (string, errcode.Code) {
	if !c.consumePrefix("[") {
		return "", errcode.RHSMissingBracket
	}
	var key string
	var code errcode.Code
	switch keyKind {
	case kindInt, kindUint:
		key, code = parseNumericRHS(c, keyKind)
	case kindFloat:
		key, code = parseNumericRHS(c, kindFloat)
	case kindString:
		key, code = parseStringRHS(c)
		if code == errcode.AllClear && key == "" {
			return "", errcode.RHSEmptyStringKey
		}
	default:
		return "", errcode.RHSValueNoMatchForStringLHSType
	}
	if code != errcode.AllClear {
		return "", code
	}
	if !c.consumePrefix("]") {
		return "", errcode.RHSUnclosedBracket
	}
	return key, errcode.AllClear
}

// parseListIndex parses a "[N]" non-negative decimal index for list
// access.
func parseListIndex(c *cursor) (string, errcode.Code) {
	if !c.consumePrefix("[") {
		return "", errcode.RHSMissingBracket
	}
	start := c.pos
	for !c.eof() && c.peekByte() >= '0' && c.peekByte() <= '9' {
		c.advance(1)
	}
	if c.pos == start {
		return "", errcode.InvalidIndexForLHSListAttribute
	}
	idx := c.s[start:c.pos]
	if !c.consumePrefix("]") {
		return "", errcode.RHSUnclosedBracket
	}
	if _, err := strconv.Atoi(idx); err != nil {
		return "", errcode.InvalidIndexForLHSListAttribute
	}
	return idx, errcode.AllClear
}

// parseInListLiteral is the dedicated mini-parser for the "in"/"inCI" RHS
// list literal: it never falls back to a generic string-to-collection
// coercion. It preserves interior commas and spaces verbatim. The closing
// ']' is the first one at bracket depth zero outside a quoted span; the
// text that follows it is not examined here.
func parseInListLiteral(c *cursor) (string, errcode.Code) {
	if !c.consumePrefix("[") {
		return "", errcode.InvalidRHSListLiteral
	}
	start := c.pos
	depth := 0
	for !c.eof() {
		b := c.peekByte()
		if b == '[' {
			depth++
			c.advance(1)
			continue
		}
		if b == ']' {
			if depth > 0 {
				depth--
				c.advance(1)
				continue
			}
			literal := c.s[start:c.pos]
			c.advance(1)
			return literal, errcode.AllClear
		}
		if b == '"' || b == '\'' {
			q := b
			c.advance(1)
			for !c.eof() && c.peekByte() != q {
				c.advance(1)
			}
			if c.eof() {
				return "", errcode.InvalidRHSListLiteral
			}
			c.advance(1)
			continue
		}
		c.advance(1)
	}
	return "", errcode.InvalidRHSListLiteral
}
