package execution

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Locator finds external executables with a `which` lookup through a CommandRunner,
// so the lookup sees the same augmented PATH as the commands that follow.
type Locator struct {
	runner CommandRunner
}

// NewLocator creates a new Locator
func NewLocator(runner CommandRunner) *Locator {
	return &Locator{runner: runner}
}

// Find returns the path of the named tool. A name containing a path separator is taken
// as an explicit path and only checked for existence.
func (l *Locator) Find(ctx context.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			return "", false
		}
		if abs, err := filepath.Abs(name); err == nil {
			return abs, true
		}
		return name, true
	}

	result, err := l.runner.Run(ctx, "which "+shellQuote(name), "")
	if err != nil {
		return "", false
	}
	path := strings.TrimSpace(result.Stdout)
	if result.ExitCode != 0 || path == "" {
		return "", false
	}
	return path, true
}

// Tools holds the resolved tool paths; an empty path means the tool was not found
type Tools struct {
	Rebar string
	Erl   string
}

// LocateTools resolves both tools once
func (l *Locator) LocateTools(ctx context.Context, rebar, erl string) Tools {
	var tools Tools
	tools.Rebar, _ = l.Find(ctx, rebar)
	tools.Erl, _ = l.Find(ctx, erl)
	return tools
}

// shellQuote quotes s for sh when it contains anything beyond a safe set
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("_-./:=+,@%", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
