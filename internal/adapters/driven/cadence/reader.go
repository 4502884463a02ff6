package cadence

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// Ensure FileReader implements the interface.
var _ driven.CadenceReader = (*FileReader)(nil)

// FileReader reads <dir>/<filter>.dat or <prefix><filter>.dat, gzipped or not.
type FileReader struct{}

// NewFileReader creates a new cadence file reader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Path returns the cadence file used for a filter, preferring the
// uncompressed name when both exist. dir is either a directory holding
// <filter>.dat or a file name prefix: "dates/lsst_" reads dates/lsst_g.dat.
func Path(dir, filter string) string {
	plain := dir + filter + ".dat"
	if isDirectory(dir) {
		plain = filepath.Join(dir, filter+".dat")
	}
	if _, err := os.Stat(plain); err == nil {
		return plain
	}
	if _, err := os.Stat(plain + ".gz"); err == nil {
		return plain + ".gz"
	}
	return plain
}

// isDirectory reports whether dir names a directory. An empty dir is the
// working directory.
func isDirectory(dir string) bool {
	if dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// ReadCadence reads the filter's epochs and depths.
func (r *FileReader) ReadCadence(ctx context.Context, dir, filter string) (domain.FilterCadence, error) {
	path := Path(dir, filter)
	rc, err := open(path)
	if err != nil {
		return domain.FilterCadence{}, fmt.Errorf("%w: %w", domain.ErrCadenceRead, err)
	}
	defer rc.Close()

	epochs, depths, err := Parse(ctx, rc)
	if err != nil {
		return domain.FilterCadence{}, fmt.Errorf("%s: %w", path, err)
	}
	return domain.FilterCadence{Filter: filter, Epochs: epochs, Depths: depths}, nil
}

// Parse reads a cadence stream. The first line is a header. Reading stops
// quietly at the first row whose numbers do not parse; a row holding an
// epoch but no depth means the file was truncated.
func Parse(ctx context.Context, r io.Reader) (epochs, depths []float64, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Header line
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrCadenceRead, err)
		}
		return nil, nil, nil
	}

	line := 1
	for sc.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		fields := strings.Fields(sc.Text())
		switch len(fields) {
		case 0:
			continue
		case 1:
			return nil, nil, fmt.Errorf("%w: line %d: epoch without depth", domain.ErrCadenceRead, line)
		}

		epoch, err1 := strconv.ParseFloat(fields[0], 64)
		depth, err2 := strconv.ParseFloat(fields[1], 64)
		if err := errors.Join(err1, err2); err != nil {
			logger.Warn("cadence line %d: %v, stopping", line, err)
			break
		}
		epochs = append(epochs, epoch)
		depths = append(depths, depth)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrCadenceRead, err)
	}

	return epochs, depths, nil
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// open returns a reader for path, transparently decompressing gzip.
func open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Detect gzip by magic number (1F 8B) or by .gz suffix.
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
