package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

// Ensure RunHistoryService implements the interface.
var _ driving.RunHistory = (*RunHistoryService)(nil)

// RunHistoryService reads past runs from the ledger.
type RunHistoryService struct {
	ledger driven.RunLedger
}

// NewRunHistoryService creates a new run history service.
func NewRunHistoryService(ledger driven.RunLedger) *RunHistoryService {
	return &RunHistoryService{ledger: ledger}
}

// List returns the most recent runs first.
func (s *RunHistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.ledger == nil {
		return nil, errors.New("run ledger not configured")
	}
	return s.ledger.ListRuns(ctx, limit)
}

// Get returns a run and its recorded failures.
func (s *RunHistoryService) Get(ctx context.Context, id string) (*domain.Run, []domain.ObjectFailure, error) {
	if s.ledger == nil {
		return nil, nil, errors.New("run ledger not configured")
	}
	run, err := s.ledger.GetRun(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}
	failures, err := s.ledger.Failures(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get failures: %w", err)
	}
	return run, failures, nil
}
