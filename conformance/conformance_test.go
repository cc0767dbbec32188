package conformance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"predeval/engine"
)

func TestFixtures(t *testing.T) {
	cases, err := LoadDir("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	eng := engine.New(nil)
	for _, lc := range cases {
		lc := lc
		t.Run(lc.FixtureName+"/"+lc.Case.Name, func(t *testing.T) {
			if skip, reason := lc.Case.IsSkipped(); skip {
				t.Skip(reason)
			}
			out, err := Run(eng, lc)
			require.NoError(t, err)
			require.True(t, out.Passed, out.Reason)
		})
	}
}
