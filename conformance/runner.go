package conformance

import (
	"fmt"

	"predeval/engine"
	"predeval/errcode"
	"predeval/tupleview/jsontuple"
)

// Outcome is the result of running one LoadedCase.
type Outcome struct {
	Passed   bool
	Got      bool
	GotCode  errcode.Code
	WantCode string
	Reason   string
}

// Run builds the fixture's tuple and evaluates its expression against
// eng, comparing the result to the case's expectation.
func Run(eng *engine.Engine, lc LoadedCase) (Outcome, error) {
	tuple, err := jsontuple.New(lc.Tuple, lc.Schema)
	if err != nil {
		return Outcome{}, fmt.Errorf("conformance: building tuple for %s/%s: %w", lc.FixtureName, lc.Case.Name, err)
	}

	got, code := eng.EvalPredicate(lc.Case.Expr, tuple)

	if lc.Case.WantsError() {
		passed := code.String() == lc.Case.ExpectError
		reason := ""
		if !passed {
			reason = fmt.Sprintf("want error %s, got %s", lc.Case.ExpectError, code.String())
		}
		return Outcome{Passed: passed, Got: got, GotCode: code, WantCode: lc.Case.ExpectError, Reason: reason}, nil
	}

	if code.IsError() {
		return Outcome{
			Passed:  false,
			Got:     got,
			GotCode: code,
			Reason:  fmt.Sprintf("unexpected error %s", code.String()),
		}, nil
	}

	passed := got == lc.Case.Expect
	reason := ""
	if !passed {
		reason = fmt.Sprintf("want %v, got %v", lc.Case.Expect, got)
	}
	return Outcome{Passed: passed, Got: got, GotCode: code, Reason: reason}, nil
}
