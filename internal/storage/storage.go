package storage

import (
	"erlt/internal/config"
	"erlt/internal/domain"
)

// Storage persists completed runs per build root (read by the history viewer)
type Storage interface {
	Append(root string, record domain.RunRecord) error
	Load(root string) ([]domain.RunRecord, error)
}

// JSONStorage stores runs in a JSON file under each build root
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's history path
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
