package discovery

import (
	"fmt"
	"strings"
)

const (
	testsSuffix  = "_tests"
	erlangSuffix = ".erl"
)

// DeriveTargets returns the module and test-module filenames for a declared module name.
// "mymod_tests" pairs with "mymod"; a name without "_tests" holds its own tests.
func DeriveTargets(name string) (moduleFilename, testsFilename string, err error) {
	if name == "" {
		return "", "", fmt.Errorf("empty module name")
	}

	moduleName := name
	switch pos := strings.Index(name, testsSuffix); {
	case pos == 0:
		return "", "", fmt.Errorf("cannot derive the module under test from %q", name)
	case pos > 0:
		moduleName = name[:pos]
	}

	return moduleName + erlangSuffix, name + erlangSuffix, nil
}
