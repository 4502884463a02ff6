package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// CadenceLoader builds the SurveyConfiguration from the survey parameters
// and the per-filter cadence files.
type CadenceLoader struct {
	reader driven.CadenceReader
}

// NewCadenceLoader creates a new cadence loader.
func NewCadenceLoader(reader driven.CadenceReader) *CadenceLoader {
	return &CadenceLoader{reader: reader}
}

// Load reads every filter's cadence, computes the global time origin and
// rebases all epochs onto it. Any cadence error aborts the load.
func (l *CadenceLoader) Load(ctx context.Context, params *domain.SurveyParameters) (*domain.SurveyConfiguration, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	logger.Section("Cadences")

	cadences := make([]domain.FilterCadence, len(params.Filters))
	for j, filter := range params.Filters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cadence, err := l.reader.ReadCadence(ctx, params.CadenceDir, filter)
		if err != nil {
			return nil, fmt.Errorf("read cadence %s: %w", filter, err)
		}
		cadence.Filter = filter
		cadences[j] = cadence
		logger.Debug("filter %s: %d epochs", filter, cadence.Len())
	}

	tmin, ok := GlobalTimeOrigin(cadences)
	if !ok {
		logger.Warn("no filter has observations, time origin set to 0")
	}
	Rebase(cadences, tmin)

	survey := &domain.SurveyConfiguration{
		Filters:  append([]string(nil), params.Filters...),
		Cadences: cadences,
		TMax:     params.Years * domain.DaysPerYear,
		TMin:     tmin,
		ErrBase:  append([]float64(nil), params.ErrBase[:len(params.Filters)]...),
	}
	logger.Info("survey: %d filters, tmin=%.6f, tmax=%.2f days", survey.NumFilters(), survey.TMin, survey.TMax)
	return survey, nil
}

// GlobalTimeOrigin returns the earliest first epoch over all non-empty
// cadences. Cadences are assumed ascending, so only first epochs are read.
// The boolean is false when every cadence is empty; the origin is then 0.
func GlobalTimeOrigin(cadences []domain.FilterCadence) (float64, bool) {
	var tmin float64
	found := false
	for _, c := range cadences {
		if c.Empty() {
			continue
		}
		if !found || c.Epochs[0] < tmin {
			tmin = c.Epochs[0]
			found = true
		}
	}
	return tmin, found
}

// Rebase subtracts tmin from every epoch in place.
func Rebase(cadences []domain.FilterCadence, tmin float64) {
	for _, c := range cadences {
		for i := range c.Epochs {
			c.Epochs[i] -= tmin
		}
	}
}

// ValidateParameters checks the fields the pipeline cannot run without.
func ValidateParameters(params *domain.SurveyParameters) error {
	if params == nil {
		return fmt.Errorf("%w: no parameters", domain.ErrConfiguration)
	}
	if len(params.Filters) == 0 {
		return fmt.Errorf("%w: no filters", domain.ErrConfiguration)
	}
	if len(params.ErrBase) < len(params.Filters) {
		return fmt.Errorf("%w: %d errbase values for %d filters",
			domain.ErrConfiguration, len(params.ErrBase), len(params.Filters))
	}
	if params.Years <= 0 {
		return fmt.Errorf("%w: survey duration must be positive", domain.ErrConfiguration)
	}
	if params.SNRModel != "" && !params.SNRModel.IsValid() {
		return fmt.Errorf("%w: unknown snr model %q", domain.ErrConfiguration, params.SNRModel)
	}
	seen := make(map[string]bool, len(params.Filters))
	for _, f := range params.Filters {
		if f == "" {
			return fmt.Errorf("%w: empty filter name", domain.ErrConfiguration)
		}
		if seen[f] {
			return fmt.Errorf("%w: duplicate filter %q", domain.ErrConfiguration, f)
		}
		seen[f] = true
	}
	return nil
}
