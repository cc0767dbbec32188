// Package errcode enumerates every failure kind the compiler and evaluator
// can return. Errors never cross the engine boundary as panics (see
// engine.Engine); every public entry point returns a Code alongside its
// result, and a non-zero Code always means the result is false.
package errcode

// Code is a single failure kind. The zero value, AllClear, is the only
// value that does not indicate failure.
type Code int

const (
	AllClear Code = iota

	// --- schema errors: the canonical type string itself is malformed ---
	SchemaMissingTuplePrefix
	SchemaUnmatchedAngleBracket
	SchemaMissingAttributeCommaOrClose
	SchemaMissingAttributeSpace
	SchemaMissingListTupleClose
	SchemaDuplicateAttributePath
	SchemaEmptyAttributeName

	// --- tokenization errors: pass 1 (bracket balance) over the expression ---
	NonPrintableCharacter
	UnbalancedParenthesis
	UnbalancedBracket
	StrayDot
	UnprocessedRHS
	UnprocessedParenthesis

	// --- lexical RHS errors: malformed right-hand-side literal ---
	RHSMissingSign
	RHSExtraSign
	RHSMissingDecimalPoint
	RHSDuplicateDecimalPoint
	RHSMissingQuote
	RHSUnclosedQuote
	RHSMissingBracket
	RHSUnclosedBracket
	RHSEmptyStringKey
	InvalidRHSListLiteral
	InvalidRHSBooleanLiteral
	InvalidRHSIntegerLiteral
	InvalidRHSFloatLiteral

	// --- type-compatibility errors: one per (operator family, lhs kind) ---
	InvalidOperationVerb
	RHSValueNoMatchForBooleanLHSType
	RHSValueNoMatchForIntLHSType
	RHSValueNoMatchForUintLHSType
	RHSValueNoMatchForFloatLHSType
	RHSValueNoMatchForStringLHSType

	RelationalNotSupportedForListLHSType
	RelationalNotSupportedForSetLHSType
	RelationalNotSupportedForMapLHSType
	RelationalNotSupportedForTupleLHSType
	RelationalOrderingNotSupportedForBooleanLHSType

	ArithmeticNotSupportedForBooleanLHSType
	ArithmeticNotSupportedForStringLHSType
	ArithmeticNotSupportedForListLHSType
	ArithmeticNotSupportedForSetLHSType
	ArithmeticNotSupportedForMapLHSType
	ArithmeticSignNotAllowedForUnsignedLHSType
	ArithmeticDecimalPointRequiredForFloatLHSType
	ArithmeticDecimalPointNotAllowedForIntegerLHSType
	ArithmeticPostOpNotRelational

	ContainsNotSupportedForBooleanLHSType
	ContainsNotSupportedForNumericLHSType
	ContainsNotSupportedForStringLHSType
	ContainsNotSupportedForMapLHSType

	SubstringNotSupportedForNonStringLHSType

	EqualityCINotSupportedForNonStringLHSType

	MembershipNotSupportedForListLHSType
	MembershipNotSupportedForSetLHSType
	MembershipNotSupportedForMapLHSType

	SizeNotSupportedForBooleanLHSType
	SizeNotSupportedForNumericLHSType

	UnsupportedLHSTypeForComparison // decimal/complex/timestamp/blob/xml/enum/ustring/bstring

	// --- structural errors: the shape of the expression is wrong ---
	MixedLogicalOperatorsFoundInSubexpression
	MixedLogicalOperatorsFoundInInterSubexpressions
	MixedLogicalOperatorsFoundInNestedGroup
	IncompleteExpressionTail
	OpenParenthesisAfterCompletedSubexpression
	ConsecutiveOpenParenthesisWithoutMatchingClose
	EmptyExpression
	LHSAttributeNotFound
	LHSAttributeAmbiguous

	// --- cache errors ---
	SchemaMismatch
	CacheAllocationFailure

	// --- runtime dispatch errors (guarded; validation should prevent these) ---
	InvalidIndexForLHSListAttribute
	MissingKeyForLHSMapAttribute
	DivideByZero
	InvalidOperatorAtEvalTime
	NotACollectionAtEvalTime
	NotATupleAtEvalTime

	// --- attribute fetcher errors ---
	EmptyAttributeName
	NonSpaceAfterValidAttributeName
	WrongTypePassed
)

var names = map[Code]string{
	AllClear: "ALL_CLEAR",

	SchemaMissingTuplePrefix:           "SCHEMA_MISSING_TUPLE_PREFIX",
	SchemaUnmatchedAngleBracket:        "SCHEMA_UNMATCHED_ANGLE_BRACKET",
	SchemaMissingAttributeCommaOrClose: "SCHEMA_MISSING_ATTRIBUTE_COMMA_OR_CLOSE",
	SchemaMissingAttributeSpace:        "SCHEMA_MISSING_ATTRIBUTE_SPACE",
	SchemaMissingListTupleClose:        "SCHEMA_MISSING_LIST_TUPLE_CLOSE",
	SchemaDuplicateAttributePath:       "SCHEMA_DUPLICATE_ATTRIBUTE_PATH",
	SchemaEmptyAttributeName:           "SCHEMA_EMPTY_ATTRIBUTE_NAME",

	NonPrintableCharacter: "NON_PRINTABLE_CHARACTER",
	UnbalancedParenthesis: "UNBALANCED_PARENTHESIS",
	UnbalancedBracket:     "UNBALANCED_BRACKET",
	StrayDot:              "STRAY_DOT",
	UnprocessedRHS:        "UNPROCESSED_RHS",
	UnprocessedParenthesis: "UNPROCESSED_PARENTHESIS",

	RHSMissingSign:          "RHS_MISSING_SIGN",
	RHSExtraSign:            "RHS_EXTRA_SIGN",
	RHSMissingDecimalPoint:  "RHS_MISSING_DECIMAL_POINT",
	RHSDuplicateDecimalPoint: "RHS_DUPLICATE_DECIMAL_POINT",
	RHSMissingQuote:         "RHS_MISSING_QUOTE",
	RHSUnclosedQuote:        "RHS_UNCLOSED_QUOTE",
	RHSMissingBracket:       "RHS_MISSING_BRACKET",
	RHSUnclosedBracket:      "RHS_UNCLOSED_BRACKET",
	RHSEmptyStringKey:       "RHS_EMPTY_STRING_KEY",
	InvalidRHSListLiteral:   "INVALID_RHS_LIST_LITERAL",
	InvalidRHSBooleanLiteral: "INVALID_RHS_BOOLEAN_LITERAL",
	InvalidRHSIntegerLiteral: "INVALID_RHS_INTEGER_LITERAL",
	InvalidRHSFloatLiteral:  "INVALID_RHS_FLOAT_LITERAL",

	InvalidOperationVerb:             "INVALID_OPERATION_VERB",
	RHSValueNoMatchForBooleanLHSType: "RHS_VALUE_NO_MATCH_FOR_BOOLEAN_LHS_TYPE",
	RHSValueNoMatchForIntLHSType:     "RHS_VALUE_NO_MATCH_FOR_INT_LHS_TYPE",
	RHSValueNoMatchForUintLHSType:    "RHS_VALUE_NO_MATCH_FOR_UINT_LHS_TYPE",
	RHSValueNoMatchForFloatLHSType:   "RHS_VALUE_NO_MATCH_FOR_FLOAT_LHS_TYPE",
	RHSValueNoMatchForStringLHSType:  "RHS_VALUE_NO_MATCH_FOR_STRING_LHS_TYPE",

	RelationalNotSupportedForListLHSType:  "RELATIONAL_NOT_SUPPORTED_FOR_LIST_LHS_TYPE",
	RelationalNotSupportedForSetLHSType:   "RELATIONAL_NOT_SUPPORTED_FOR_SET_LHS_TYPE",
	RelationalNotSupportedForMapLHSType:   "RELATIONAL_NOT_SUPPORTED_FOR_MAP_LHS_TYPE",
	RelationalNotSupportedForTupleLHSType: "RELATIONAL_NOT_SUPPORTED_FOR_TUPLE_LHS_TYPE",
	RelationalOrderingNotSupportedForBooleanLHSType: "RELATIONAL_ORDERING_NOT_SUPPORTED_FOR_BOOLEAN_LHS_TYPE",

	ArithmeticNotSupportedForBooleanLHSType:           "ARITHMETIC_NOT_SUPPORTED_FOR_BOOLEAN_LHS_TYPE",
	ArithmeticNotSupportedForStringLHSType:            "ARITHMETIC_NOT_SUPPORTED_FOR_STRING_LHS_TYPE",
	ArithmeticNotSupportedForListLHSType:              "ARITHMETIC_NOT_SUPPORTED_FOR_LIST_LHS_TYPE",
	ArithmeticNotSupportedForSetLHSType:               "ARITHMETIC_NOT_SUPPORTED_FOR_SET_LHS_TYPE",
	ArithmeticNotSupportedForMapLHSType:               "ARITHMETIC_NOT_SUPPORTED_FOR_MAP_LHS_TYPE",
	ArithmeticSignNotAllowedForUnsignedLHSType:        "ARITHMETIC_SIGN_NOT_ALLOWED_FOR_UNSIGNED_LHS_TYPE",
	ArithmeticDecimalPointRequiredForFloatLHSType:     "ARITHMETIC_DECIMAL_POINT_REQUIRED_FOR_FLOAT_LHS_TYPE",
	ArithmeticDecimalPointNotAllowedForIntegerLHSType: "ARITHMETIC_DECIMAL_POINT_NOT_ALLOWED_FOR_INTEGER_LHS_TYPE",
	ArithmeticPostOpNotRelational:                     "ARITHMETIC_POST_OP_NOT_RELATIONAL",

	ContainsNotSupportedForBooleanLHSType: "CONTAINS_NOT_SUPPORTED_FOR_BOOLEAN_LHS_TYPE",
	ContainsNotSupportedForNumericLHSType: "CONTAINS_NOT_SUPPORTED_FOR_NUMERIC_LHS_TYPE",
	ContainsNotSupportedForStringLHSType:  "CONTAINS_NOT_SUPPORTED_FOR_STRING_LHS_TYPE",
	ContainsNotSupportedForMapLHSType:     "CONTAINS_NOT_SUPPORTED_FOR_MAP_LHS_TYPE",

	SubstringNotSupportedForNonStringLHSType: "SUBSTRING_NOT_SUPPORTED_FOR_NON_STRING_LHS_TYPE",

	EqualityCINotSupportedForNonStringLHSType: "EQUALITY_CI_NOT_SUPPORTED_FOR_NON_STRING_LHS_TYPE",

	MembershipNotSupportedForListLHSType: "MEMBERSHIP_NOT_SUPPORTED_FOR_LIST_LHS_TYPE",
	MembershipNotSupportedForSetLHSType:  "MEMBERSHIP_NOT_SUPPORTED_FOR_SET_LHS_TYPE",
	MembershipNotSupportedForMapLHSType:  "MEMBERSHIP_NOT_SUPPORTED_FOR_MAP_LHS_TYPE",

	SizeNotSupportedForBooleanLHSType: "SIZE_NOT_SUPPORTED_FOR_BOOLEAN_LHS_TYPE",
	SizeNotSupportedForNumericLHSType: "SIZE_NOT_SUPPORTED_FOR_NUMERIC_LHS_TYPE",

	UnsupportedLHSTypeForComparison: "UNSUPPORTED_LHS_TYPE_FOR_COMPARISON",

	MixedLogicalOperatorsFoundInSubexpression:       "MIXED_LOGICAL_OPERATORS_FOUND_IN_SUBEXPRESSION",
	MixedLogicalOperatorsFoundInInterSubexpressions: "MIXED_LOGICAL_OPERATORS_FOUND_IN_INTER_SUBEXPRESSIONS",
	MixedLogicalOperatorsFoundInNestedGroup:         "MIXED_LOGICAL_OPERATORS_FOUND_IN_NESTED_GROUP",
	IncompleteExpressionTail:                        "INCOMPLETE_EXPRESSION_TAIL",
	OpenParenthesisAfterCompletedSubexpression:       "OPEN_PARENTHESIS_AFTER_COMPLETED_SUBEXPRESSION",
	ConsecutiveOpenParenthesisWithoutMatchingClose:   "CONSECUTIVE_OPEN_PARENTHESIS_WITHOUT_MATCHING_CLOSE",
	EmptyExpression:                                  "EMPTY_EXPRESSION",
	LHSAttributeNotFound:                             "LHS_ATTRIBUTE_NOT_FOUND",
	LHSAttributeAmbiguous:                             "LHS_ATTRIBUTE_AMBIGUOUS",

	SchemaMismatch:          "SCHEMA_MISMATCH",
	CacheAllocationFailure:  "CACHE_ALLOCATION_FAILURE",

	InvalidIndexForLHSListAttribute: "INVALID_INDEX_FOR_LHS_LIST_ATTRIBUTE",
	MissingKeyForLHSMapAttribute:    "MISSING_KEY_FOR_LHS_MAP_ATTRIBUTE",
	DivideByZero:                    "DIVIDE_BY_ZERO",
	InvalidOperatorAtEvalTime:       "INVALID_OPERATOR_AT_EVAL_TIME",
	NotACollectionAtEvalTime:        "NOT_A_COLLECTION_AT_EVAL_TIME",
	NotATupleAtEvalTime:             "NOT_A_TUPLE_AT_EVAL_TIME",

	EmptyAttributeName:              "EMPTY_ATTRIBUTE_NAME",
	NonSpaceAfterValidAttributeName: "NON_SPACE_AFTER_VALID_ATTRIBUTE_NAME",
	WrongTypePassed:                 "WRONG_TYPE_PASSED",
}

// String returns the symbolic screaming-snake-case name of the code, e.g.
// "INVALID_INDEX_FOR_LHS_LIST_ATTRIBUTE".
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "UNKNOWN_ERROR_CODE"
}

// IsError reports whether c indicates a failed call. Any non-zero code
// means the associated result is false and no further work was done.
func (c Code) IsError() bool {
	return c != AllClear
}
