package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.Watcher = (*WatchService)(nil)

// WatchService re-runs the pipeline whenever the configuration, the
// cadence directory or the raw curve directory changes.
type WatchService struct {
	loader   driven.SurveyLoader
	watcher  driven.ChangeWatcher
	pipeline driving.Pipeline
}

// NewWatchService creates a new watch service.
func NewWatchService(loader driven.SurveyLoader, watcher driven.ChangeWatcher, pipeline driving.Pipeline) *WatchService {
	return &WatchService{loader: loader, watcher: watcher, pipeline: pipeline}
}

// Watch runs the pipeline sequentially: once at start, then once per batch.
func (s *WatchService) Watch(
	ctx context.Context,
	opts driving.RunOptions,
	report func(*domain.RunSummary, error),
) error {
	params, err := s.loader.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	rawDir := params.RawDir
	if opts.InputDir != "" {
		rawDir = opts.InputDir
	}

	changes, err := s.watcher.Watch(ctx, []string{opts.ConfigPath, params.CadenceDir, rawDir})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	report(s.pipeline.Run(ctx, opts))
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("%d paths changed, running again", len(batch))
			report(s.pipeline.Run(ctx, opts))
		}
	}
}
