package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Ensure RunLedger implements the interface.
var _ driven.RunLedger = (*RunLedger)(nil)

// RunLedger is an in-memory implementation of driven.RunLedger.
type RunLedger struct {
	mu       sync.RWMutex
	runs     map[string]domain.Run
	order    []string
	failures map[string][]domain.ObjectFailure
}

// NewRunLedger creates a new in-memory run ledger.
func NewRunLedger() *RunLedger {
	return &RunLedger{
		runs:     make(map[string]domain.Run),
		failures: make(map[string][]domain.ObjectFailure),
	}
}

// StartRun records a new run.
func (l *RunLedger) StartRun(_ context.Context, run domain.Run) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.runs[run.ID]; !ok {
		l.order = append(l.order, run.ID)
	}
	l.runs[run.ID] = run
	return nil
}

// RecordFailure stores one object failure.
func (l *RunLedger) RecordFailure(_ context.Context, runID string, f domain.ObjectFailure) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.runs[runID]; !ok {
		return domain.ErrNotFound
	}
	l.failures[runID] = append(l.failures[runID], f)
	return nil
}

// FinishRun replaces the stored run.
func (l *RunLedger) FinishRun(_ context.Context, run domain.Run) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.runs[run.ID]; !ok {
		return domain.ErrNotFound
	}
	l.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by ID.
func (l *RunLedger) GetRun(_ context.Context, id string) (*domain.Run, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	run, ok := l.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first.
func (l *RunLedger) ListRuns(_ context.Context, limit int) ([]domain.Run, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]domain.Run, 0, len(l.order))
	for i := len(l.order) - 1; i >= 0; i-- {
		result = append(result, l.runs[l.order[i]])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Failures returns the failures of a run in object order.
func (l *RunLedger) Failures(_ context.Context, runID string) ([]domain.ObjectFailure, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := append([]domain.ObjectFailure(nil), l.failures[runID]...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result, nil
}
