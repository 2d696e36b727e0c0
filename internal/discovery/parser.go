package discovery

import (
	"fmt"
	"os"
)

// Parser reads source files and extracts their test generators
type Parser struct {
	resolver *Resolver
}

// NewParser creates a new Parser
func NewParser(resolver *Resolver) *Parser {
	return &Parser{resolver: resolver}
}

// FindTestFunctions returns the selectable test generators in a source file, in source order
func (p *Parser) FindTestFunctions(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	var names []string
	seen := make(map[string]bool) // multi-clause generators appear once
	for _, span := range p.resolver.TestFunctions(string(content)) {
		if seen[span.Name] {
			continue
		}
		seen[span.Name] = true
		names = append(names, span.Name)
	}
	return names, nil
}
