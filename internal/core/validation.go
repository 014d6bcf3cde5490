package core

import (
	"errors"
	"strings"
)

var (
	ErrEmptyProjectCode = errors.New("project code is required")
	ErrEmptyBasePath    = errors.New("base path is required")
)

var codeFolder = strings.NewReplacer(" ", "_", "-", "_")

// NormalizeProjectCode returns the code the backend stores for code: lower
// case, with spaces and hyphens turned into underscores.
func NormalizeProjectCode(code string) string {
	return codeFolder.Replace(strings.ToLower(code))
}

// ValidateProjectCode checks a complete project code. Any non-blank code is
// accepted; the backend folds it with NormalizeProjectCode.
func ValidateProjectCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyProjectCode
	}
	return nil
}
