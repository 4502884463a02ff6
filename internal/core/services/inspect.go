package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

// Ensure InspectService implements the interface.
var _ driving.Inspector = (*InspectService)(nil)

// InspectService decodes one object's compressed output.
type InspectService struct {
	loader  driven.SurveyLoader
	outputs driven.OutputFactory
}

// NewInspectService creates a new inspect service.
func NewInspectService(loader driven.SurveyLoader, outputs driven.OutputFactory) *InspectService {
	return &InspectService{loader: loader, outputs: outputs}
}

// Inspect decodes object opts.Index. With a configuration the segments are
// named after its filters and sampled magnitudes are converted back to flux.
func (s *InspectService) Inspect(ctx context.Context, opts driving.InspectOptions) (*domain.Inspection, error) {
	if opts.Index < 0 {
		return nil, fmt.Errorf("%w: negative object index %d", domain.ErrConfiguration, opts.Index)
	}

	dir := opts.OutputDir
	var params *domain.SurveyParameters
	if opts.ConfigPath != "" {
		var err error
		params, err = s.loader.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
		if dir == "" {
			dir = params.OutputDir
		}
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: no output directory", domain.ErrConfiguration)
	}

	decoder, err := s.outputs.Decoder(dir)
	if err != nil {
		return nil, fmt.Errorf("open decoder: %w", err)
	}
	var filters []string
	if params != nil {
		filters = params.Filters
	}
	obj, err := decoder.Decode(ctx, opts.Index, filters)
	if err != nil {
		return nil, fmt.Errorf("decode object %d: %w", opts.Index, err)
	}

	out := &domain.Inspection{Index: opts.Index, Object: obj}
	if params != nil && len(obj.Sampled.Segments) == len(params.Filters) && len(params.ErrBase) >= len(params.Filters) {
		out.Fluxes = make([][]float64, len(obj.Sampled.Segments))
		for j := range obj.Sampled.Segments {
			mags := obj.Sampled.SegmentValues(j)
			fluxes := make([]float64, len(mags))
			for k, m := range mags {
				fluxes[k] = FluxFromMagnitude(m, params.ErrBase[j])
			}
			out.Fluxes[j] = fluxes
		}
	}
	return out, nil
}
