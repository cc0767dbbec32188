// Package conformance loads declarative YAML fixtures — a schema, a
// sample tuple, and a list of expression/expectation pairs — and runs
// each expression through the engine, comparing its actual verdict
// against the fixture's expectation.
package conformance

// Fixture is one YAML file: a schema, a JSON tuple matching it, and the
// predicate cases to run against that tuple.
type Fixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Schema      string `yaml:"schema"`
	Tuple       string `yaml:"tuple"`
	Cases       []Case `yaml:"cases"`
}

// Case is a single expression and its expected outcome.
type Case struct {
	Name        string `yaml:"name"`
	Expr        string `yaml:"expr"`
	Expect      bool   `yaml:"expect,omitempty"`
	ExpectError string `yaml:"expect_error,omitempty"`
	Skip        string `yaml:"skip,omitempty"`
}

// IsSkipped reports whether this case should be skipped, and why.
func (c Case) IsSkipped() (bool, string) {
	if c.Skip == "" {
		return false, ""
	}
	return true, c.Skip
}

// WantsError reports whether this case expects a specific compile/eval
// error rather than a boolean verdict.
func (c Case) WantsError() bool {
	return c.ExpectError != ""
}
