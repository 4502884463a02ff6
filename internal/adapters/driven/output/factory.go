// Package output creates the file writers rooted at a run's output directory.
package output

import (
	"fmt"
	"os"

	"github.com/custodia-labs/lcsynth/internal/adapters/driven/codec"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/header"
	"github.com/custodia-labs/lcsynth/internal/adapters/driven/table"
	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.OutputFactory = (*Factory)(nil)

// Factory builds text, header and codec writers on the local filesystem.
type Factory struct{}

// NewFactory creates a new output factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Tables returns a table writer for dir.
func (f *Factory) Tables(dir string) (driven.TableWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return table.NewTextWriter(dir), nil
}

// Encoder returns a codec writing binaries and headers into dir.
func (f *Factory) Encoder(dir string) (driven.CurveEncoder, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return codec.NewEncoder(dir, header.NewFileStore(dir)), nil
}

// Headers returns the header store for dir.
func (f *Factory) Headers(dir string) (driven.HeaderStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return header.NewFileStore(dir), nil
}

// Decoder returns a codec reading existing output in dir.
func (f *Factory) Decoder(dir string) (driven.CurveDecoder, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrConfiguration, dir)
	}
	return codec.NewEncoder(dir, header.NewFileStore(dir)), nil
}

func ensureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: output directory not set", domain.ErrConfiguration)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	return nil
}
