package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportStore provides a file-based storage for exported shopping lists.
type ExportStore struct {
	basePath string
}

// NewExportStore creates a new ExportStore and ensures the base directory exists.
func NewExportStore(basePath string) (*ExportStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", basePath, err)
	}
	return &ExportStore{basePath: basePath}, nil
}

// Dir returns the directory exports are written to.
func (s *ExportStore) Dir() string { return s.basePath }

// sanitizeName keeps a file name inside the store directory.
func sanitizeName(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	return name, nil
}

// Path returns the full path for a given export name.
func (s *ExportStore) Path(name string) (string, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, clean), nil
}

// Save writes an export, replacing any previous file with the same name, and
// returns the path written.
func (s *ExportStore) Save(name string, data []byte) (string, error) {
	filePath, err := s.Path(name)
	if err != nil {
		return "", err
	}

	// Write to a temp file first so a reader never sees half a list.
	tmp, err := os.CreateTemp(s.basePath, ".export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set export permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return filePath, nil
}

// SaveTimestamped stores an export under "<stem>_<timestamp><ext>" so earlier
// exports are kept.
func (s *ExportStore) SaveTimestamped(name string, at time.Time, data []byte) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	versioned := fmt.Sprintf("%s_%s%s", stem, at.UTC().Format("20060102-150405"), ext)
	return s.Save(versioned, data)
}
