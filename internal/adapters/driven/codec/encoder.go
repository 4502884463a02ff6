package codec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.CurveEncoder = (*Encoder)(nil)
	_ driven.CurveDecoder = (*Encoder)(nil)
)

// FullName returns the compressed full-curve file name of object i.
func FullName(i int) string {
	return fmt.Sprintf("comp_full_%d.bin", i)
}

// SampledName returns the compressed sampled-curve file name of object i.
func SampledName(i int) string {
	return fmt.Sprintf("comp_sampled_%d.bin", i)
}

// Encoder writes reduced-precision curves and their headers.
type Encoder struct {
	dir     string
	headers driven.HeaderStore
}

// NewEncoder creates an encoder writing binaries to dir and headers to headers.
func NewEncoder(dir string, headers driven.HeaderStore) *Encoder {
	return &Encoder{dir: dir, headers: headers}
}

// Encode writes the compressed form of one object.
func (e *Encoder) Encode(
	ctx context.Context,
	index int,
	full, sampled domain.AggregatedCurve,
	policy domain.EncodingPolicy,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := policy.Validate(); err != nil {
		return err
	}
	if err := sampled.Validate(); err != nil {
		return err
	}
	if !sampled.HasUncertainty() && sampled.Len() > 0 {
		return fmt.Errorf("%w: sampled curve has no uncertainty", domain.ErrLengthMismatch)
	}

	fullRange := RangeOf(full.Value)
	timeRange := RangeOf(sampled.Time)
	valueRange := RangeOf(sampled.Value)
	errRange := RangeOf(sampled.Uncertainty)

	fw := policy.Full.Value
	buf := appendQuantized(make([]byte, 0, full.Len()*fw.Bytes()), full.Value, fullRange, fw)
	if err := e.writeFile(FullName(index), buf); err != nil {
		return err
	}

	sw := policy.Sampled
	size := sampled.Len() * (sw.Time.Bytes() + sw.Value.Bytes() + sw.Uncertainty.Bytes())
	buf = make([]byte, 0, size)
	buf = appendQuantized(buf, sampled.Time, timeRange, sw.Time)
	buf = appendQuantized(buf, sampled.Value, valueRange, sw.Value)
	buf = appendQuantized(buf, sampled.Uncertainty, errRange, sw.Uncertainty)
	if err := e.writeFile(SampledName(index), buf); err != nil {
		return err
	}

	h := &domain.Header{Lines: [domain.HeaderLines]string{
		strconv.Itoa(sampled.Len()) + " " + strconv.Itoa(full.Len()),
		formatRange(fullRange, fw),
		formatRange(timeRange, sw.Time),
		formatRange(valueRange, sw.Value),
		formatRange(errRange, sw.Uncertainty),
	}}
	return e.headers.WriteHeader(ctx, index, h)
}

func (e *Encoder) writeFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(e.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOutputIO, err)
	}
	return nil
}
