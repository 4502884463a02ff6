package driven

import (
	"context"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// SurveyLoader parses a survey configuration document.
// Failures wrap domain.ErrConfiguration.
type SurveyLoader interface {
	Load(path string) (*domain.SurveyParameters, error)
}

// CadenceReader reads the cadence file of one filter.
type CadenceReader interface {
	// ReadCadence returns the epochs and depths in file order, not yet
	// rebased. An unreadable or truncated file wraps domain.ErrCadenceRead.
	ReadCadence(ctx context.Context, dir, filter string) (domain.FilterCadence, error)
}

// ChangeWatcher reports debounced batches of changed paths until ctx ends.
// The returned channel is closed when watching stops.
type ChangeWatcher interface {
	Watch(ctx context.Context, paths []string) (<-chan []string, error)
}
