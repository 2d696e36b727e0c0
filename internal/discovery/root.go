package discovery

import (
	"path/filepath"

	"erlt/internal/domain"
)

// LocateRoot derives the build root from the absolute path of the file being edited:
// the parent of the file's directory (src/ or test/ sit directly under the root).
// The process working directory is left alone; callers pass the root to each command.
func LocateRoot(filePath, testsFilename string) (domain.ProjectContext, error) {
	if filePath == "" {
		return domain.ProjectContext{}, domain.NewError(domain.KindConfiguration,
			"This module (%q) has not been saved on disk: cannot retrieve project root.", testsFilename)
	}

	abs, err := filepath.Abs(filePath)
	if err != nil {
		return domain.ProjectContext{}, domain.WrapError(domain.KindConfiguration, err, "resolve %s", filePath)
	}

	return domain.ProjectContext{RootDirectory: filepath.Dir(filepath.Dir(abs))}, nil
}
