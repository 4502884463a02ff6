package services

import (
	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// testSurvey is a rebased two-filter survey: g with zero-point 24 and
// depth 25, r with zero-point 25 and depth 24.5, five epochs each.
func testSurvey() *domain.SurveyConfiguration {
	return &domain.SurveyConfiguration{
		Filters: []string{"g", "r"},
		Cadences: []domain.FilterCadence{
			{Filter: "g", Epochs: []float64{0, 10, 20, 30, 40}, Depths: fill(5, 25)},
			{Filter: "r", Epochs: []float64{5, 15, 25, 35, 45}, Depths: fill(5, 24.5)},
		},
		TMax:    3652.5,
		TMin:    59000,
		ErrBase: []float64{24, 25},
	}
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// testRaw builds n objects. Full curves have five steps per filter with
// flux 1 in g and 10 in r; sampled curves have the given counts.
func testRaw(n int, sampledCounts [2]int) *driven.RawCollections {
	fluxes := [2]float64{1, 10}
	raw := &driven.RawCollections{Mother: domain.NewMother(n)}
	for j, f := range []string{"g", "r"} {
		full := &domain.Collection{Variant: domain.VariantFull, Filter: f}
		sampled := &domain.Collection{Variant: domain.VariantSampled, Filter: f}
		for i := 0; i < n; i++ {
			full.Curves = append(full.Curves, domain.LightCurve{
				Time:  ramp(5, 0, 1),
				Value: fill(5, fluxes[j]),
			})
			sampled.Curves = append(sampled.Curves, domain.LightCurve{
				Time:  ramp(sampledCounts[j], float64(5*j), 10),
				Value: fill(sampledCounts[j], fluxes[j]),
			})
		}
		raw.Full = append(raw.Full, full)
		raw.Sampled = append(raw.Sampled, sampled)
	}
	return raw
}
