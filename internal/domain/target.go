package domain

import "path/filepath"

// TestTarget identifies a single EUnit test generator to run
type TestTarget struct {
	ModuleFilename      string `json:"module_filename"`       // Module under test, e.g. "mymod.erl"
	ModuleTestsFilename string `json:"module_tests_filename"` // File holding the test, e.g. "mymod_tests.erl"
	FunctionName        string `json:"function_name"`         // Generator with arity, e.g. "bar_test_/0"
}

// TestsModule returns the Erlang module name of the tests file (filename without extension)
func (t TestTarget) TestsModule() string {
	name := t.ModuleTestsFilename
	return name[:len(name)-len(filepath.Ext(name))]
}

// ProjectContext holds the build root a run executes in
type ProjectContext struct {
	RootDirectory string
}
