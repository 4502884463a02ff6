package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// StageCompressed names the codec writer in reports and the ledger.
const StageCompressed = "compressed"

// CompressedWriter encodes aggregated curves at reduced precision and
// rewrites each object's metadata header with the final sample counts.
type CompressedWriter struct {
	encoder driven.CurveEncoder
	headers driven.HeaderStore
}

// NewCompressedWriter creates a new compressed writer.
func NewCompressedWriter(encoder driven.CurveEncoder, headers driven.HeaderStore) *CompressedWriter {
	return &CompressedWriter{encoder: encoder, headers: headers}
}

// Write encodes every object and rewrites its header. Objects whose
// aggregation failed are skipped; encode and header failures are recorded
// per object and do not stop the rest of the catalogue.
func (w *CompressedWriter) Write(
	ctx context.Context,
	full, sampled *domain.AggregatedCollection,
	policy domain.EncodingPolicy,
) (*domain.WriteReport, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if full.NumCurves() != sampled.NumCurves() {
		return nil, fmt.Errorf("%w: %d full and %d sampled curves",
			domain.ErrLengthMismatch, full.NumCurves(), sampled.NumCurves())
	}

	logger.Section("Compressed output")

	report := &domain.WriteReport{Stage: StageCompressed}
	for i := range full.Curves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, s := full.Curves[i], sampled.Curves[i]
		if !f.Valid() || !s.Valid() {
			continue
		}
		if err := w.encoder.Encode(ctx, i, f, s, policy); err != nil {
			logger.Warn("object %d: encode: %v", i, err)
			report.Fail(i, fmt.Errorf("encode: %w", err))
			continue
		}
		if err := w.RewriteHeader(ctx, i, s.Counts(), f.Len()); err != nil {
			logger.Warn("object %d: %v", i, err)
			report.Fail(i, err)
			continue
		}
		report.Written++
	}

	logger.Info("encoded %d of %d objects", report.Written, full.NumCurves())
	return report, nil
}

// RewriteHeader replaces line 1 of object index's header with the
// per-filter sampled counts followed by the full-curve count.
// Lines 2-5 are written back unchanged.
func (w *CompressedWriter) RewriteHeader(ctx context.Context, index int, sampledCounts []int, fullCount int) error {
	header, err := w.headers.ReadHeader(ctx, index)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	header.Lines[0] = domain.CountsLine(sampledCounts, fullCount)
	if err := w.headers.WriteHeader(ctx, index, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
