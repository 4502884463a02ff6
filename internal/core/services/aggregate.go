package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// StageAggregate names the aggregation step in reports and the ledger.
const StageAggregate = "aggregate"

// Aggregator concatenates per-filter curves into one curve per object.
type Aggregator struct {
	model domain.SNRModel
}

// NewAggregator creates an aggregator using the given SNR model.
func NewAggregator(model domain.SNRModel) *Aggregator {
	if !model.IsValid() {
		model = domain.DefaultSNRModel
	}
	return &Aggregator{model: model}
}

// Aggregate builds the aggregated full and sampled collections.
// Shape errors (missing filters, object counts that disagree) are returned
// as an error. Errors confined to one object's data are recorded in the
// report and leave that object's curves empty.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	survey *domain.SurveyConfiguration,
	raw *driven.RawCollections,
) (full, sampled *domain.AggregatedCollection, report *domain.WriteReport, err error) {
	if err := CheckShape(survey, raw); err != nil {
		return nil, nil, nil, err
	}

	logger.Info("creating collection with all filters per light curve")

	n := raw.Mother.NumCurves()
	full = &domain.AggregatedCollection{
		Variant: domain.VariantFull,
		Filters: append([]string(nil), survey.Filters...),
		Curves:  make([]domain.AggregatedCurve, n),
	}
	sampled = &domain.AggregatedCollection{
		Variant: domain.VariantSampled,
		Filters: append([]string(nil), survey.Filters...),
		Curves:  make([]domain.AggregatedCurve, n),
	}
	report = &domain.WriteReport{Stage: StageAggregate}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		f, s, err := a.AggregateObject(survey, raw, i)
		if err != nil {
			logger.Warn("object %d: %v", i, err)
			report.Fail(i, err)
			continue
		}
		full.Curves[i] = f
		sampled.Curves[i] = s
		report.Written++
	}

	return full, sampled, report, nil
}

// AggregateObject builds the aggregated full and sampled curves of object i.
// Segment j starts where segment j-1 ends and is as long as filter j's
// curve; a filter with no samples contributes an empty segment.
func (a *Aggregator) AggregateObject(
	survey *domain.SurveyConfiguration,
	raw *driven.RawCollections,
	i int,
) (domain.AggregatedCurve, domain.AggregatedCurve, error) {
	full, err := a.aggregateFull(survey, raw.Full, i)
	if err != nil {
		return domain.AggregatedCurve{}, domain.AggregatedCurve{}, err
	}
	sampled, err := a.aggregateSampled(survey, raw.Sampled, i)
	if err != nil {
		return domain.AggregatedCurve{}, domain.AggregatedCurve{}, err
	}
	return full, sampled, nil
}

func (a *Aggregator) aggregateFull(
	survey *domain.SurveyConfiguration,
	collections []*domain.Collection,
	i int,
) (domain.AggregatedCurve, error) {
	segments, total, err := layout(survey.Filters, collections, i)
	if err != nil {
		return domain.AggregatedCurve{}, err
	}
	// Every filter shares the simulation's time steps.
	for k := 1; k < len(segments); k++ {
		if seg := segments[k]; seg.Length != segments[0].Length {
			return domain.AggregatedCurve{}, fmt.Errorf("%w: full %s has %d steps, %s has %d",
				domain.ErrLengthMismatch, seg.Filter, seg.Length, segments[0].Filter, segments[0].Length)
		}
	}

	out := domain.AggregatedCurve{
		LightCurve: domain.LightCurve{
			Time:  make([]float64, total),
			Value: make([]float64, total),
		},
		Segments: segments,
	}

	for j, seg := range segments {
		curve := collections[j].Curve(i)
		p := photometry{model: a.model, baseline: survey.Baseline(j)}
		copy(out.Time[seg.Offset:seg.End()], curve.Time)
		if err := p.magnitudes(out.Value[seg.Offset:seg.End()], curve.Value); err != nil {
			return domain.AggregatedCurve{}, fmt.Errorf("full %s: %w", seg.Filter, err)
		}
	}
	return out, nil
}

func (a *Aggregator) aggregateSampled(
	survey *domain.SurveyConfiguration,
	collections []*domain.Collection,
	i int,
) (domain.AggregatedCurve, error) {
	segments, total, err := layout(survey.Filters, collections, i)
	if err != nil {
		return domain.AggregatedCurve{}, err
	}

	out := domain.AggregatedCurve{
		LightCurve: domain.LightCurve{
			Time:        make([]float64, total),
			Value:       make([]float64, total),
			Uncertainty: make([]float64, total),
		},
		Segments: segments,
	}

	for j, seg := range segments {
		curve := collections[j].Curve(i)
		depths := survey.Cadences[j].Depths
		if seg.Length > len(depths) {
			return domain.AggregatedCurve{}, fmt.Errorf("sampled %s: %w: %d samples, %d epochs",
				seg.Filter, domain.ErrCadenceMismatch, seg.Length, len(depths))
		}

		p := photometry{model: a.model, baseline: survey.Baseline(j)}
		mags := out.Value[seg.Offset:seg.End()]
		errs := out.Uncertainty[seg.Offset:seg.End()]
		copy(out.Time[seg.Offset:seg.End()], curve.Time)
		if err := p.magnitudes(mags, curve.Value); err != nil {
			return domain.AggregatedCurve{}, fmt.Errorf("sampled %s: %w", seg.Filter, err)
		}
		for k := range mags {
			ref, err := p.referenceMagnitude(curve, k, mags[k])
			if err != nil {
				return domain.AggregatedCurve{}, fmt.Errorf("sampled %s: %w", seg.Filter, err)
			}
			errs[k] = p.uncertainty(ref, depths[k])
		}
	}
	return out, nil
}

// layout computes the segments of object i across the given per-filter
// collections and the total length.
func layout(filters []string, collections []*domain.Collection, i int) ([]domain.Segment, int, error) {
	segments := make([]domain.Segment, len(filters))
	offset := 0
	for j, filter := range filters {
		curve := collections[j].Curve(i)
		if err := curve.Validate(); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", filter, err)
		}
		segments[j] = domain.Segment{Filter: filter, Offset: offset, Length: curve.Len()}
		offset += curve.Len()
	}
	return segments, offset, nil
}

// CheckShape verifies that raw collections cover every filter and object.
func CheckShape(survey *domain.SurveyConfiguration, raw *driven.RawCollections) error {
	if raw == nil || raw.Mother == nil {
		return fmt.Errorf("%w: no mother collection", domain.ErrLengthMismatch)
	}
	nf := survey.NumFilters()
	if len(raw.Full) != nf || len(raw.Sampled) != nf {
		return fmt.Errorf("%w: %d filters, %d full and %d sampled collections",
			domain.ErrLengthMismatch, nf, len(raw.Full), len(raw.Sampled))
	}
	n := raw.Mother.NumCurves()
	for j := 0; j < nf; j++ {
		if raw.Full[j].NumCurves() != n {
			return fmt.Errorf("%w: full %s has %d curves, mother has %d",
				domain.ErrLengthMismatch, survey.Filters[j], raw.Full[j].NumCurves(), n)
		}
		if raw.Sampled[j].NumCurves() != n {
			return fmt.Errorf("%w: sampled %s has %d curves, mother has %d",
				domain.ErrLengthMismatch, survey.Filters[j], raw.Sampled[j].NumCurves(), n)
		}
	}
	return nil
}
