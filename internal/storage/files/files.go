// Package files stores uploaded photo originals on local disk. Database
// rows keep the relative path so the storage directory can move between
// deployments.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes and reads photo files under a single root directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Save writes the file contents under a name derived from the photo ID and
// returns the relative path and the number of bytes written.
func (s *Store) Save(id uuid.UUID, filename string, r io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" {
		ext = ".jpg"
	}
	rel := id.String() + ext

	out, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create photo file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, r)
	if err != nil {
		os.Remove(out.Name())
		return "", 0, fmt.Errorf("failed to write photo file: %w", err)
	}
	return rel, n, nil
}

// Open opens a stored file by the relative path recorded at save time.
func (s *Store) Open(rel string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.Base(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to open photo file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. A missing file is not an error, the
// database row is the source of truth.
func (s *Store) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Base(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo file: %w", err)
	}
	return nil
}
