package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

// StageUncompressed names the text-table writer in reports and the ledger.
const StageUncompressed = "uncompressed"

// SampledTableName is the table of object i's sampled curve in one filter.
func SampledTableName(filter string, i int) string {
	return fmt.Sprintf("table%s_%d.dat", filter, i)
}

// TheoreticalTableName is the table of object i's noise-free curves.
func TheoreticalTableName(i int) string {
	return fmt.Sprintf("tablet_%d.dat", i)
}

// UncompressedWriter emits human-readable tables: one per filter and object
// for the sampled curves, and one per object for the theoretical curves.
type UncompressedWriter struct {
	tables driven.TableWriter
	model  domain.SNRModel
}

// NewUncompressedWriter creates a new text-table writer.
func NewUncompressedWriter(tables driven.TableWriter, model domain.SNRModel) *UncompressedWriter {
	if !model.IsValid() {
		model = domain.DefaultSNRModel
	}
	return &UncompressedWriter{tables: tables, model: model}
}

// Write emits every table. Input collections are not modified.
// Failures are isolated per object and returned in the report.
func (w *UncompressedWriter) Write(
	ctx context.Context,
	survey *domain.SurveyConfiguration,
	raw *driven.RawCollections,
) (*domain.WriteReport, error) {
	if err := CheckShape(survey, raw); err != nil {
		return nil, err
	}

	logger.Section("Uncompressed output")

	n := raw.Mother.NumCurves()
	failed := make(map[int]bool)
	report := &domain.WriteReport{Stage: StageUncompressed}

	for j, filter := range survey.Filters {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if failed[i] {
				continue
			}
			if err := w.writeSampled(ctx, survey, j, raw.Sampled[j].Curve(i), SampledTableName(filter, i)); err != nil {
				logger.Warn("object %d: %v", i, err)
				report.Fail(i, err)
				failed[i] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if failed[i] {
			continue
		}
		if err := w.writeTheoretical(ctx, survey, raw.Full, i); err != nil {
			logger.Warn("object %d: %v", i, err)
			report.Fail(i, err)
			failed[i] = true
			continue
		}
		report.Written++
	}

	logger.Info("wrote tables for %d of %d objects", report.Written, n)
	return report, nil
}

// SampledRows converts a raw sampled curve of filter j into table rows of
// absolute epoch, magnitude and uncertainty. The error model is evaluated
// at the sampled magnitude itself.
func SampledRows(model domain.SNRModel, survey *domain.SurveyConfiguration, j int, curve domain.LightCurve) ([][]float64, error) {
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	depths := survey.Cadences[j].Depths
	if curve.Len() > len(depths) {
		return nil, fmt.Errorf("%w: %d samples, %d epochs", domain.ErrCadenceMismatch, curve.Len(), len(depths))
	}

	p := photometry{model: model, baseline: survey.Baseline(j)}
	rows := make([][]float64, curve.Len())
	for k := range rows {
		mag, err := ToMagnitude(curve.Value[k], p.baseline)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", k, err)
		}
		rows[k] = []float64{survey.AbsoluteEpoch(curve.Time[k]), mag, p.uncertainty(mag, depths[k])}
	}
	return rows, nil
}

// TheoreticalRows builds the noise-free table of object i: the step index
// followed by one magnitude column per filter. Every filter's full curve
// must have the same length.
func TheoreticalRows(survey *domain.SurveyConfiguration, full []*domain.Collection, i int) ([][]float64, error) {
	steps := full[0].Curve(i).Len()
	for j := range full {
		if got := full[j].Curve(i).Len(); got != steps {
			return nil, fmt.Errorf("%w: full %s has %d steps, %s has %d",
				domain.ErrLengthMismatch, survey.Filters[j], got, survey.Filters[0], steps)
		}
	}

	rows := make([][]float64, steps)
	for k := range rows {
		row := make([]float64, 1+len(full))
		row[0] = float64(k)
		for j := range full {
			mag, err := ToMagnitude(full[j].Curve(i).Value[k], survey.Baseline(j))
			if err != nil {
				return nil, fmt.Errorf("full %s step %d: %w", survey.Filters[j], k, err)
			}
			row[1+j] = mag
		}
		rows[k] = row
	}
	return rows, nil
}

func (w *UncompressedWriter) writeSampled(
	ctx context.Context,
	survey *domain.SurveyConfiguration,
	j int,
	curve domain.LightCurve,
	name string,
) error {
	rows, err := SampledRows(w.model, survey, j, curve)
	if err != nil {
		return fmt.Errorf("sampled %s: %w", survey.Filters[j], err)
	}
	if err := w.tables.WriteTable(ctx, name, rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (w *UncompressedWriter) writeTheoretical(
	ctx context.Context,
	survey *domain.SurveyConfiguration,
	full []*domain.Collection,
	i int,
) error {
	rows, err := TheoreticalRows(survey, full, i)
	if err != nil {
		return err
	}
	name := TheoreticalTableName(i)
	if err := w.tables.WriteTable(ctx, name, rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
