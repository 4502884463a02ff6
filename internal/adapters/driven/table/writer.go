// Package table writes human-readable numeric tables.
package table

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Ensure TextWriter implements the interface.
var _ driven.TableWriter = (*TextWriter)(nil)

// TextWriter writes tables as rows of " %11.6e" cells under a directory.
type TextWriter struct {
	dir string
}

// NewTextWriter creates a table writer rooted at dir.
func NewTextWriter(dir string) *TextWriter {
	return &TextWriter{dir: dir}
}

// Dir returns the output directory.
func (w *TextWriter) Dir() string {
	return w.dir
}

// WriteTable creates or overwrites dir/name.
func (w *TextWriter) WriteTable(_ context.Context, name string, rows [][]float64) (err error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", domain.ErrOutputIO, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	buf := make([]byte, 0, 32)
	for _, row := range rows {
		for _, v := range row {
			buf = AppendCell(buf[:0], v)
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	return nil
}

// AppendCell appends v formatted like C's " %11.6e".
func AppendCell(dst []byte, v float64) []byte {
	cell := strconv.FormatFloat(v, 'e', 6, 64)
	dst = append(dst, ' ')
	for i := len(cell); i < 11; i++ {
		dst = append(dst, ' ')
	}
	return append(dst, cell...)
}
