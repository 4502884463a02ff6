package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineService runs the full synthesis pipeline: survey and cadence
// loading, then the uncompressed and compressed writer paths.
type PipelineService struct {
	loader   driven.SurveyLoader
	cadences *CadenceLoader
	sources  driven.CurveSourceFactory
	outputs  driven.OutputFactory
	ledger   driven.RunLedger
	defaults domain.AppSettings

	now func() time.Time
}

// NewPipelineService creates a new pipeline service.
// The ledger is optional - if nil, runs are not recorded.
func NewPipelineService(
	loader driven.SurveyLoader,
	reader driven.CadenceReader,
	sources driven.CurveSourceFactory,
	outputs driven.OutputFactory,
	ledger driven.RunLedger,
	defaults domain.AppSettings,
) *PipelineService {
	return &PipelineService{
		loader:   loader,
		cadences: NewCadenceLoader(reader),
		sources:  sources,
		outputs:  outputs,
		ledger:   ledger,
		defaults: defaults,
		now:      time.Now,
	}
}

// Run executes one pipeline pass.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (p *PipelineService) Run(ctx context.Context, opts driving.RunOptions) (*domain.RunSummary, error) {
	// 1. Parse configuration
	params, err := p.loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	p.applyOverrides(params, opts)

	summary := &domain.RunSummary{
		Run: domain.Run{
			ID:         uuid.NewString(),
			ConfigPath: opts.ConfigPath,
			OutputDir:  params.OutputDir,
			Filters:    params.Filters,
			SNRModel:   params.SNRModel,
			Status:     domain.RunRunning,
			StartedAt:  p.now(),
		},
	}
	p.startRun(ctx, summary.Run)

	// 2. Load cadences; any failure here aborts before output
	survey, err := p.cadences.Load(ctx, params)
	if err != nil {
		return nil, p.abort(ctx, summary, fmt.Errorf("load survey: %w", err))
	}
	summary.Run.TMin = survey.TMin

	// 3. Load raw curves
	if params.RawDir == "" {
		return nil, p.abort(ctx, summary, fmt.Errorf("%w: no raw curve directory", domain.ErrConfiguration))
	}
	source, err := p.sources.Open(params.RawDir)
	if err != nil {
		return nil, p.abort(ctx, summary, fmt.Errorf("open raw curves: %w", err))
	}
	raw, err := source.Load(ctx, survey.Filters)
	if err != nil {
		return nil, p.abort(ctx, summary, fmt.Errorf("load raw curves: %w", err))
	}
	summary.Run.Objects = raw.Mother.NumCurves()
	logger.Info("loaded %d objects from %s", summary.Run.Objects, params.RawDir)

	// 4. Uncompressed path
	if params.Generic.FullData && !opts.SkipUncompressed {
		tables, err := p.outputs.Tables(params.OutputDir)
		if err != nil {
			return nil, p.abort(ctx, summary, fmt.Errorf("open table writer: %w", err))
		}
		report, err := NewUncompressedWriter(tables, params.SNRModel).Write(ctx, survey, raw)
		if err != nil {
			return nil, p.abort(ctx, summary, fmt.Errorf("write uncompressed: %w", err))
		}
		summary.Uncompressed = report
	}

	// 5. Aggregation and compressed path
	if params.Generic.DegradedData && !opts.SkipCompressed {
		report, err := p.writeCompressed(ctx, params, survey, raw)
		if err != nil {
			return nil, p.abort(ctx, summary, err)
		}
		summary.Compressed = report
	}

	// 6. Record outcome
	p.finish(ctx, summary)
	return summary, nil
}

func (p *PipelineService) writeCompressed(
	ctx context.Context,
	params *domain.SurveyParameters,
	survey *domain.SurveyConfiguration,
	raw *driven.RawCollections,
) (*domain.WriteReport, error) {
	full, sampled, aggReport, err := NewAggregator(params.SNRModel).Aggregate(ctx, survey, raw)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	encoder, err := p.outputs.Encoder(params.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("open encoder: %w", err)
	}
	headers, err := p.outputs.Headers(params.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("open header store: %w", err)
	}

	report, err := NewCompressedWriter(encoder, headers).Write(ctx, full, sampled, params.Encoding)
	if err != nil {
		return nil, fmt.Errorf("write compressed: %w", err)
	}

	// Aggregation failures belong to the compressed path.
	report.Failures = append(report.Failures, aggReport.Failures...)
	return report, nil
}

func (p *PipelineService) applyOverrides(params *domain.SurveyParameters, opts driving.RunOptions) {
	if opts.OutputDir != "" {
		params.OutputDir = opts.OutputDir
	}
	if params.OutputDir == "" {
		params.OutputDir = p.defaults.OutputDir
	}
	if opts.InputDir != "" {
		params.RawDir = opts.InputDir
	}
	switch {
	case opts.SNRModel != "":
		params.SNRModel = opts.SNRModel
	case params.SNRModel == "":
		params.SNRModel = p.defaults.SNRModel
	}
	if params.Encoding == (domain.EncodingPolicy{}) {
		params.Encoding = p.defaults.Encoding
	}
}

func (p *PipelineService) startRun(ctx context.Context, run domain.Run) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.StartRun(ctx, run); err != nil {
		logger.Warn("ledger: start run: %v", err)
	}
}

// abort marks the run failed and returns err unchanged.
func (p *PipelineService) abort(ctx context.Context, summary *domain.RunSummary, err error) error {
	summary.Run.Status = domain.RunFailed
	summary.Run.Error = err.Error()
	summary.Run.FinishedAt = p.now()
	if p.ledger != nil {
		// A cancelled run is still recorded.
		if lerr := p.ledger.FinishRun(context.WithoutCancel(ctx), summary.Run); lerr != nil {
			logger.Warn("ledger: finish run: %v", lerr)
		}
	}
	return err
}

func (p *PipelineService) finish(ctx context.Context, summary *domain.RunSummary) {
	failures := summary.Failures()
	summary.Run.Status = domain.RunSucceeded
	if len(failures) > 0 {
		summary.Run.Status = domain.RunPartial
		summary.Run.Error = fmt.Sprintf("%d object outputs failed", len(failures))
	}
	summary.Run.FinishedAt = p.now()

	if p.ledger == nil {
		return
	}
	for _, f := range failures {
		if err := p.ledger.RecordFailure(ctx, summary.Run.ID, f); err != nil {
			logger.Warn("ledger: record failure: %v", err)
		}
	}
	if err := p.ledger.FinishRun(ctx, summary.Run); err != nil {
		logger.Warn("ledger: finish run: %v", err)
	}
}
