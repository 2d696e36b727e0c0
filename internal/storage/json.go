package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"erlt/internal/domain"
)

type historyFile struct {
	Runs []domain.RunRecord `json:"runs"`
}

// Append adds record to the root's history, dropping the oldest runs beyond the configured limit
func (s *JSONStorage) Append(root string, record domain.RunRecord) error {
	runs, err := s.Load(root)
	if err != nil {
		return err
	}

	runs = append(runs, record)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}

	data, err := json.MarshalIndent(historyFile{Runs: runs}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	path := s.cfg.GetHistoryPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Load reads the root's history, oldest first. A missing file is an empty history.
func (s *JSONStorage) Load(root string) ([]domain.RunRecord, error) {
	path := s.cfg.GetHistoryPath(root)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var history historyFile
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return history.Runs, nil
}
