// Package rawcurves reads the simulator's raw flux light-curve dumps.
//
// For every filter f and object i the input directory holds
// full_<f>_<i>.dat and sampled_<f>_<i>.dat. Rows are "t flux" for full
// curves and "t flux [refflux]" for sampled ones; blank lines and lines
// starting with '#' are skipped. The number of objects is the number of
// consecutive full_<f0>_<i>.dat files of the first filter.
package rawcurves

import (
	"bufio"
	"context"
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

// Verify interface compliance.
var (
	_ driven.CurveSource        = (*FileSource)(nil)
	_ driven.CurveSourceFactory = (*Factory)(nil)
)

// Name returns the raw dump file name for a variant, filter and object.
func Name(v domain.Variant, filter string, i int) string {
	return fmt.Sprintf("%s_%s_%d.dat", v, filter, i)
}

// Factory opens file sources.
type Factory struct{}

// NewFactory creates a raw curve source factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open returns a source reading from dir. The directory must exist.
func (f *Factory) Open(dir string) (driven.CurveSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: raw curve directory: %w", domain.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrConfiguration, dir)
	}
	return NewFileSource(dir), nil
}

// FileSource reads raw dumps from one directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Count returns the number of objects dumped for filter.
func (s *FileSource) Count(filter string) int {
	n := 0
	for {
		if _, err := os.Stat(filepath.Join(s.dir, Name(domain.VariantFull, filter, n))); err != nil {
			return n
		}
		n++
	}
}

// Load reads the full and sampled collections of every filter.
func (s *FileSource) Load(ctx context.Context, filters []string) (*driven.RawCollections, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("%w: no filters", domain.ErrConfiguration)
	}
	n := s.Count(filters[0])
	if n == 0 {
		return nil, fmt.Errorf("%w: no raw curves for filter %s in %s", domain.ErrNotFound, filters[0], s.dir)
	}
	logger.Debug("Reading %d raw curves per filter from %s", n, s.dir)

	raw := &driven.RawCollections{
		Mother:  domain.NewMother(n),
		Full:    make([]*domain.Collection, len(filters)),
		Sampled: make([]*domain.Collection, len(filters)),
	}
	for j, f := range filters {
		full := &domain.Collection{Variant: domain.VariantFull, Filter: f, Curves: make([]domain.LightCurve, n)}
		sampled := &domain.Collection{Variant: domain.VariantSampled, Filter: f, Curves: make([]domain.LightCurve, n)}
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c, err := s.read(domain.VariantFull, f, i)
			if err != nil {
				return nil, err
			}
			full.Curves[i] = c
			if c, err = s.read(domain.VariantSampled, f, i); err != nil {
				return nil, err
			}
			sampled.Curves[i] = c
		}
		raw.Full[j] = full
		raw.Sampled[j] = sampled
	}
	return raw, nil
}

func (s *FileSource) read(v domain.Variant, filter string, i int) (domain.LightCurve, error) {
	path := filepath.Join(s.dir, Name(v, filter, i))
	f, err := os.Open(path)
	if err != nil {
		return domain.LightCurve{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return domain.LightCurve{}, fmt.Errorf("%s: %w", path, err)
	}
	if v == domain.VariantFull {
		c.Uncertainty = nil
	}
	return c, nil
}

// Parse reads "t flux [refflux]" rows. The reference flux column must be
// present on every row or on none.
func Parse(r io.Reader) (domain.LightCurve, error) {
	var c domain.LightCurve
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 || len(fields) > 3 {
			return domain.LightCurve{}, fmt.Errorf("line %d: want 2 or 3 columns, got %d", line, len(fields))
		}
		var row [3]float64
		for k, field := range fields {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return domain.LightCurve{}, fmt.Errorf("line %d: %w", line, err)
			}
			row[k] = x
		}
		if len(fields) == 3 {
			if len(c.Uncertainty) != len(c.Value) {
				return domain.LightCurve{}, fmt.Errorf("line %d: %w", line, domain.ErrLengthMismatch)
			}
			c.Uncertainty = append(c.Uncertainty, row[2])
		} else if len(c.Uncertainty) > 0 {
			return domain.LightCurve{}, fmt.Errorf("line %d: %w", line, domain.ErrLengthMismatch)
		}
		c.Time = append(c.Time, row[0])
		c.Value = append(c.Value, row[1])
	}
	if err := sc.Err(); err != nil {
		return domain.LightCurve{}, err
	}
	return c, nil
}
