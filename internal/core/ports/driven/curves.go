package driven

import (
	"context"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// RawCollections is the simulator output consumed by both writer paths.
// Full and Sampled hold one collection per filter, in survey filter order.
type RawCollections struct {
	Mother  *domain.Collection
	Full    []*domain.Collection
	Sampled []*domain.Collection
}

// CurveSource supplies raw flux light curves for every filter.
type CurveSource interface {
	Load(ctx context.Context, filters []string) (*RawCollections, error)
}

// CurveSourceFactory opens the raw curves stored under a directory.
type CurveSourceFactory interface {
	Open(dir string) (CurveSource, error)
}
