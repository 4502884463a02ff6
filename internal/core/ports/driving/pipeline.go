package driving

import (
	"context"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// RunOptions select what a pipeline run does.
// Zero values fall back to the survey configuration.
type RunOptions struct {
	// ConfigPath is the survey configuration document.
	ConfigPath string

	// InputDir overrides the configured raw curve directory.
	InputDir string

	// OutputDir overrides the configured output directory.
	OutputDir string

	// SNRModel overrides the configured uncertainty model.
	SNRModel domain.SNRModel

	// SkipUncompressed disables the text-table path.
	SkipUncompressed bool

	// SkipCompressed disables the aggregation and codec path.
	SkipCompressed bool
}

// Pipeline runs the light-curve synthesis pipeline.
type Pipeline interface {
	// Run loads the survey, then writes uncompressed and compressed output.
	// Configuration and cadence errors abort the run; per-object output
	// errors are reported in the summary.
	Run(ctx context.Context, opts RunOptions) (*domain.RunSummary, error)
}

// SurveyService exposes the loaded survey for inspection.
type SurveyService interface {
	// Survey loads the configuration and cadences without writing output.
	Survey(ctx context.Context, configPath string) (*domain.SurveyParameters, *domain.SurveyConfiguration, error)

	// Parameters parses the configuration only.
	Parameters(configPath string) (*domain.SurveyParameters, error)

	// Profiles builds the per-wavelength emission profile parameters.
	Profiles(params *domain.SurveyParameters) ([]domain.ProfileParameters, error)
}

// RunHistory reads the run ledger.
type RunHistory interface {
	List(ctx context.Context, limit int) ([]domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, []domain.ObjectFailure, error)
}

// InspectOptions select the object to read back.
type InspectOptions struct {
	// ConfigPath optionally names filters and baselines.
	ConfigPath string

	// OutputDir overrides the configured output directory.
	OutputDir string

	// Index is the object index.
	Index int
}

// Inspector reads back compressed output.
type Inspector interface {
	Inspect(ctx context.Context, opts InspectOptions) (*domain.Inspection, error)
}

// Watcher re-runs the pipeline when survey inputs change.
type Watcher interface {
	// Watch runs once, then again after every batch of changes, until ctx
	// ends. report receives every run's outcome.
	Watch(ctx context.Context, opts RunOptions, report func(*domain.RunSummary, error)) error
}
