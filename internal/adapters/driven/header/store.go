// Package header persists the five-line per-object metadata headers
// (comp_p_<i>.dat) that accompany the compressed light curves.
package header

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.HeaderStore = (*FileStore)(nil)

// FileName returns the header file name of object i.
func FileName(i int) string {
	return fmt.Sprintf("comp_p_%d.dat", i)
}

// FileStore reads and writes headers under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a header store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the header path of object i.
func (s *FileStore) Path(i int) string {
	return filepath.Join(s.dir, FileName(i))
}

// ReadHeader reads the first five lines of object index's header.
func (s *FileStore) ReadHeader(_ context.Context, index int) (*domain.Header, error) {
	data, err := os.ReadFile(s.Path(index))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	h, err := domain.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrOutputIO, FileName(index), err)
	}
	return h, nil
}

// WriteHeader replaces object index's header. The new content is written
// to a temporary file and renamed over the old one.
func (s *FileStore) WriteHeader(_ context.Context, index int, h *domain.Header) (err error) {
	tmp, err := os.CreateTemp(s.dir, FileName(index)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(h.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(index)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	return nil
}
