package driven

import (
	"context"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// RunLedger records pipeline runs and the objects that failed in them.
// Backed by SQLite; an in-memory version exists for tests.
type RunLedger interface {
	// StartRun records a new run in the running state.
	StartRun(ctx context.Context, run domain.Run) error

	// RecordFailure stores one object failure for a run.
	RecordFailure(ctx context.Context, runID string, failure domain.ObjectFailure) error

	// FinishRun sets the final status of a run.
	FinishRun(ctx context.Context, run domain.Run) error

	// GetRun retrieves a run by ID. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns the most recent runs first, at most limit (0 = all).
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// Failures returns the recorded failures of a run.
	Failures(ctx context.Context, runID string) ([]domain.ObjectFailure, error)
}
