package errcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllClearIsNotAnError(t *testing.T) {
	require.False(t, AllClear.IsError())
	require.Equal(t, "ALL_CLEAR", AllClear.String())
}

func TestNonZeroCodesAreErrors(t *testing.T) {
	require.True(t, LHSAttributeNotFound.IsError())
	require.Equal(t, "LHS_ATTRIBUTE_NOT_FOUND", LHSAttributeNotFound.String())
}

func TestUnknownCodeStringFallsBack(t *testing.T) {
	var bogus Code = 1 << 30
	require.Equal(t, "UNKNOWN_ERROR_CODE", bogus.String())
	require.True(t, bogus.IsError())
}
