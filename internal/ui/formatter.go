package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"erlt/internal/discovery"
	"erlt/internal/domain"
)

// Formatter formats listings and history for the terminal
type Formatter struct {
	out    io.Writer
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(out io.Writer, parser *discovery.Parser) *Formatter {
	return &Formatter{out: out, parser: parser}
}

// PrintTestList prints every source file that declares test generators, with its generators as children.
// Files without generators are left out.
func (f *Formatter) PrintTestList(projectPath string, files []string) error {
	type entry struct {
		path  string
		tests []string
	}

	var entries []entry
	total := 0
	for _, file := range files {
		tests, err := f.parser.FindTestFunctions(file)
		if err != nil {
			return err
		}
		if len(tests) == 0 {
			continue
		}
		relPath, err := filepath.Rel(projectPath, file)
		if err != nil {
			relPath = file
		}
		entries = append(entries, entry{path: relPath, tests: tests})
		total += len(tests)
	}

	if len(entries) == 0 {
		fmt.Fprintln(f.out, color.YellowString("No test generators found"))
		return nil
	}

	fmt.Fprintln(f.out, color.GreenString("Found %d test generator(s) in %d file(s):\n", total, len(entries)))
	for i, e := range entries {
		isLastFile := i == len(entries)-1
		if isLastFile {
			fmt.Fprintln(f.out, color.CyanString("└── %s", e.path))
		} else {
			fmt.Fprintln(f.out, color.CyanString("├── %s", e.path))
		}

		for j, test := range e.tests {
			isLastCase := j == len(e.tests)-1
			var prefix string
			switch {
			case isLastFile && isLastCase:
				prefix = "    └── "
			case isLastFile:
				prefix = "    ├── "
			case isLastCase:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, color.YellowString(test))
		}
	}
	return nil
}

// PrintHistory prints recorded runs, newest last
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		fmt.Fprintln(f.out, color.YellowString("No recorded runs"))
		return
	}
	for _, r := range records {
		fmt.Fprintf(f.out, "%s  %s  %s:%s  %s\n",
			r.Timestamp,
			StateLabel(r.State, r.Count),
			r.Target.ModuleTestsFilename,
			r.Target.FunctionName,
			color.WhiteString("%.2fs", r.DurationSeconds),
		)
	}
}

// StateLabel renders a recorded state and count as a short colored label
func StateLabel(state string, count int) string {
	switch state {
	case domain.StatePassed.String():
		return color.GreenString("PASSED")
	case domain.StateMultiplePassed.String():
		return color.GreenString("%d PASSED", count)
	case domain.StateFailed.String():
		if count == domain.UnknownCount {
			return color.RedString("FAILED")
		}
		return color.RedString("%d FAILED", count)
	}
	return color.RedString("ABORTED")
}
