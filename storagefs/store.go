// Package storagefs persists uploaded report images on the local
// filesystem under unique names.
package storagefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes image files into a base directory.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if needed and returns a store
// rooted at it.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// extensionFor maps an image MIME type to a file extension. Unknown
// types fall back to .jpg.
func extensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// Save writes the raw image bytes under a fresh UUID name and returns
// the stored filename.
func (s *Store) Save(data []byte, mimeType string) (string, error) {
	name := uuid.New().String() + extensionFor(mimeType)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return name, nil
}

// Path resolves a stored filename to an absolute path inside the base
// directory. Clients may send either the bare name or the name
// prefixed with the base directory ("uploads/x.jpg"); anything else
// that escapes the directory is rejected.
func (s *Store) Path(name string) (string, error) {
	name = strings.TrimPrefix(name, filepath.Base(s.baseDir)+"/")
	clean := filepath.Base(name)
	if clean != name || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid image name: %q", name)
	}
	return filepath.Join(s.baseDir, clean), nil
}
