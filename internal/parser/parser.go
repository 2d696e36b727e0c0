package parser

import "erlt/internal/domain"

// Parser classifies the output of the compile and run steps
type Parser interface {
	CompileSucceeded(result domain.ExecutionResult) bool
	Classify(result domain.ExecutionResult) Classification
}

// Classification is the terminal state of a run step and the count extracted for it
type Classification struct {
	State domain.State
	Count int // domain.UnknownCount when the output carries no count
}
