package codec

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// Decode reads back the compressed curves of object index.
// filters names the segments; when it does not match the header the
// segments are named by position. Full-curve times are not stored and come
// back as the step index within each segment.
func (e *Encoder) Decode(ctx context.Context, index int, filters []string) (*domain.DecodedObject, error) {
	h, err := e.headers.ReadHeader(ctx, index)
	if err != nil {
		return nil, err
	}
	counts, fullCount, err := domain.ParseCountsLine(h.Lines[0])
	if err != nil {
		return nil, fmt.Errorf("%w: counts line: %w", domain.ErrOutputIO, err)
	}

	var ranges [4]Range
	var widths [4]domain.Width
	for k := range ranges {
		ranges[k], widths[k], err = parseRange(h.Lines[k+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
		}
	}
	out := &domain.DecodedObject{
		Header: h,
		Policy: domain.EncodingPolicy{
			Full:    domain.FieldWidths{Value: widths[0]},
			Sampled: domain.FieldWidths{Time: widths[1], Value: widths[2], Uncertainty: widths[3]},
		},
	}

	names := segmentNames(filters, len(counts))
	nSampled := 0
	for _, n := range counts {
		if n > math.MaxInt-nSampled {
			return nil, fmt.Errorf("%w: counts line %q overflows", domain.ErrOutputIO, h.Lines[0])
		}
		nSampled += n
	}

	data, err := e.readFile(FullName(index))
	if err != nil {
		return nil, err
	}
	values, _, err := readQuantized(data, fullCount, ranges[0], widths[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrOutputIO, FullName(index), err)
	}
	out.Full, err = fullCurve(values, names)
	if err != nil {
		return nil, err
	}

	data, err = e.readFile(SampledName(index))
	if err != nil {
		return nil, err
	}
	var fields [3][]float64
	for k := range fields {
		fields[k], data, err = readQuantized(data, nSampled, ranges[k+1], widths[k+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrOutputIO, SampledName(index), err)
		}
	}
	out.Sampled = domain.AggregatedCurve{
		LightCurve: domain.LightCurve{Time: fields[0], Value: fields[1], Uncertainty: fields[2]},
		Segments:   segments(names, counts),
	}
	return out, nil
}

func (e *Encoder) readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	return data, nil
}

// fullCurve splits the full values evenly across the filters.
func fullCurve(values []float64, names []string) (domain.AggregatedCurve, error) {
	nf := len(names)
	if nf == 0 || len(values)%nf != 0 {
		return domain.AggregatedCurve{}, fmt.Errorf(
			"%w: %d full samples across %d filters", domain.ErrLengthMismatch, len(values), nf)
	}
	per := len(values) / nf
	counts := make([]int, nf)
	times := make([]float64, len(values))
	for j := range counts {
		counts[j] = per
		for k := 0; k < per; k++ {
			times[j*per+k] = float64(k)
		}
	}
	return domain.AggregatedCurve{
		LightCurve: domain.LightCurve{Time: times, Value: values},
		Segments:   segments(names, counts),
	}, nil
}

func segments(names []string, counts []int) []domain.Segment {
	segs := make([]domain.Segment, len(counts))
	offset := 0
	for j, n := range counts {
		segs[j] = domain.Segment{Filter: names[j], Offset: offset, Length: n}
		offset += n
	}
	return segs
}

func segmentNames(filters []string, n int) []string {
	if len(filters) == n {
		return filters
	}
	names := make([]string, n)
	for j := range names {
		names[j] = strconv.Itoa(j)
	}
	return names
}
