package discovery

import (
	"regexp"
)

var (
	// -module(name). at the start of a line
	modulePattern = regexp.MustCompile(`(?m)^\s*-module\(([a-zA-Z0-9_]+)\)\.`)

	// A test generator clause up to its terminating dot, with an optional comment prefix on the same line.
	// `[^.]` crosses newlines, `.` in the comment does not.
	testClausePattern = regexp.MustCompile(`(%.*)?([a-zA-Z0-9_]*_test_\(\)\s*->[^.]*\.)`)

	// A clause span that starts with a comment marker is commented out
	commentedClausePattern = regexp.MustCompile(`^%.*((?:[a-zA-Z0-9_]*)_test_)\(\)\s*->`)

	// Function name at the start of a selectable clause
	clauseNamePattern = regexp.MustCompile(`^((?:[a-zA-Z0-9_]*)_test_)\(\)\s*->`)
)

// TestArity is the fixed arity of test generators
const TestArity = "/0"

// Span is a selectable test generator clause in a buffer. Start and End are byte offsets, End exclusive.
type Span struct {
	Name  string // Function name with arity, e.g. "bar_test_/0"
	Start int
	End   int
}

// Contains reports whether offset touches the span, both bounds inclusive
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

// Resolver extracts the module name and the test generator under the cursor from Erlang source.
// It is a regex heuristic: block comments, string literals and multi-clause functions are not understood.
type Resolver struct{}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// ModuleName returns the name declared by the first -module directive
func (r *Resolver) ModuleName(buffer string) (string, bool) {
	m := modulePattern.FindStringSubmatch(buffer)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TestFunctions returns every test generator clause that is not commented out, in buffer order
func (r *Resolver) TestFunctions(buffer string) []Span {
	var spans []Span
	for _, loc := range testClausePattern.FindAllStringIndex(buffer, -1) {
		content := buffer[loc[0]:loc[1]]
		if commentedClausePattern.MatchString(content) {
			continue
		}
		m := clauseNamePattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		spans = append(spans, Span{Name: m[1] + TestArity, Start: loc[0], End: loc[1]})
	}
	return spans
}

// TestFunction returns the name (with arity) of the first selectable clause containing cursor
func (r *Resolver) TestFunction(buffer string, cursor int) (string, bool) {
	for _, span := range r.TestFunctions(buffer) {
		if span.Contains(cursor) {
			return span.Name, true
		}
	}
	return "", false
}
