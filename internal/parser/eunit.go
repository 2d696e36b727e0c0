package parser

import (
	"regexp"
	"strconv"
	"strings"

	"erlt/internal/domain"
)

const singlePassedMarker = "Test passed."

var (
	allPassedPattern = regexp.MustCompile(`All (\d+) tests passed\.`)
	failedPattern    = regexp.MustCompile(`Failed: (\d+)\.`)
)

// EUnitParser classifies rebar and eunit text output
type EUnitParser struct {
	sentinel string
}

// NewEUnitParser creates a parser that recognizes sentinel as the placeholder suite passed to rebar
func NewEUnitParser(sentinel string) *EUnitParser {
	return &EUnitParser{sentinel: sentinel}
}

// CompileSucceeded reports whether rebar got far enough to look for the sentinel suite.
// Rebar fails on the missing suite, so the exit code says nothing about compilation.
func (p *EUnitParser) CompileSucceeded(result domain.ExecutionResult) bool {
	return strings.Contains(result.Stdout, p.sentinel) || strings.Contains(result.Stderr, p.sentinel)
}

// Classify maps the runtime's output to a terminal state
func (p *EUnitParser) Classify(result domain.ExecutionResult) Classification {
	if result.ExitCode != 0 {
		return Classification{State: domain.StateAborted, Count: domain.UnknownCount}
	}

	output := result.Stdout
	if strings.Contains(output, singlePassedMarker) {
		return Classification{State: domain.StatePassed, Count: 1}
	}

	// eunit prints "All 2 tests passed." for any count above one
	if m := allPassedPattern.FindStringSubmatch(output); m != nil {
		return Classification{State: domain.StateMultiplePassed, Count: atoiOrUnknown(m[1])}
	}

	count := domain.UnknownCount
	if m := failedPattern.FindStringSubmatch(output); m != nil {
		count = atoiOrUnknown(m[1])
	}
	return Classification{State: domain.StateFailed, Count: count}
}

func atoiOrUnknown(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return domain.UnknownCount
	}
	return n
}
