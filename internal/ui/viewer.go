package ui

import "erlt/internal/domain"

// Viewer displays recorded runs
type Viewer interface {
	View(records []domain.RunRecord) error
}
