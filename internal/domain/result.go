package domain

import "time"

// ExecutionResult is the captured result of one external command
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Combined returns stdout followed by stderr, the way failures are surfaced to the sink
func (r ExecutionResult) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + " " + r.Stderr
}

// State is a test runner state
type State int

const (
	StateIdle State = iota
	StateCompiling
	StateRunning
	StatePassed
	StateMultiplePassed
	StateFailed
	StateAborted
)

var stateNames = map[State]string{
	StateIdle:           "idle",
	StateCompiling:      "compiling",
	StateRunning:        "running",
	StatePassed:         "passed",
	StateMultiplePassed: "multiple_passed",
	StateFailed:         "failed",
	StateAborted:        "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s
func (s State) Terminal() bool {
	return s >= StatePassed
}

// UnknownCount marks a test count that could not be extracted from the output
const UnknownCount = -1

// Outcome is the terminal result of a single test run
type Outcome struct {
	Target   TestTarget
	State    State
	Count    int    // Passed count for MultiplePassed, failed count for Failed, UnknownCount otherwise
	Output   string // Raw tool output surfaced for Failed and Aborted runs
	Duration time.Duration
	Err      error // nil for passing states
}

// Passed reports whether the run ended in a passing state
func (o *Outcome) Passed() bool {
	return o.State == StatePassed || o.State == StateMultiplePassed
}

// RunRecord is one entry of the persisted run history
type RunRecord struct {
	Target          TestTarget `json:"target"`
	Root            string     `json:"root"`
	State           string     `json:"state"`
	Count           int        `json:"count"`
	Output          string     `json:"output,omitempty"`
	DurationSeconds float64    `json:"duration_seconds"`
	Timestamp       string     `json:"timestamp"`
}

// NewRunRecord builds a history record from an outcome
func NewRunRecord(project ProjectContext, outcome *Outcome, at time.Time) RunRecord {
	return RunRecord{
		Target:          outcome.Target,
		Root:            project.RootDirectory,
		State:           outcome.State.String(),
		Count:           outcome.Count,
		Output:          outcome.Output,
		DurationSeconds: outcome.Duration.Seconds(),
		Timestamp:       at.Format(time.RFC3339),
	}
}
