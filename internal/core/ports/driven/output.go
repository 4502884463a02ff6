package driven

import (
	"context"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// TableWriter writes a human-readable numeric table.
// Implementations create or overwrite the named file in their directory.
type TableWriter interface {
	WriteTable(ctx context.Context, name string, rows [][]float64) error
}

// CurveEncoder writes one object's aggregated curves at reduced precision.
// It also writes the object's metadata header with a provisional line 1.
type CurveEncoder interface {
	Encode(ctx context.Context, index int, full, sampled domain.AggregatedCurve, policy domain.EncodingPolicy) error
}

// CurveDecoder reads compressed curves back.
type CurveDecoder interface {
	// Decode returns object index, naming its segments after filters when
	// they match the header counts.
	Decode(ctx context.Context, index int, filters []string) (*domain.DecodedObject, error)
}

// HeaderStore reads and rewrites per-object metadata headers.
type HeaderStore interface {
	// ReadHeader returns the header of object index. A missing file wraps
	// domain.ErrOutputIO; fewer than five lines wraps domain.ErrHeaderShort.
	ReadHeader(ctx context.Context, index int) (*domain.Header, error)

	// WriteHeader replaces the header of object index.
	WriteHeader(ctx context.Context, index int, header *domain.Header) error
}

// OutputFactory creates writers rooted at an output directory.
// The directory is created if needed.
type OutputFactory interface {
	Tables(dir string) (TableWriter, error)
	Encoder(dir string) (CurveEncoder, error)
	Headers(dir string) (HeaderStore, error)

	// Decoder opens existing output; it never creates dir.
	Decoder(dir string) (CurveDecoder, error)
}
