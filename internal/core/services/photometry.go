package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// ToMagnitude converts a normalised flux into a calibrated magnitude:
// baseline − 2.5·log10(flux). Non-positive, NaN or infinite flux is a
// domain error; it is never clamped.
func ToMagnitude(flux, baseline float64) (float64, error) {
	if math.IsNaN(flux) || math.IsInf(flux, 0) || flux <= 0 {
		return 0, fmt.Errorf("%w: flux %g", domain.ErrDomain, flux)
	}
	return baseline - 2.5*math.Log10(flux), nil
}

// FluxFromMagnitude inverts ToMagnitude.
func FluxFromMagnitude(mag, baseline float64) float64 {
	return math.Pow(10, (baseline-mag)/2.5)
}

// SignalToNoise returns the signal-to-noise ratio of a source of magnitude
// mag observed with 5-sigma limiting depth m5.
func SignalToNoise(model domain.SNRModel, mag, m5 float64) float64 {
	dm := mag - m5
	if model == domain.SNRLiteral {
		return 5 * math.Pow(-0.4*dm, 10)
	}
	return 5 * math.Pow(10, -0.4*dm)
}

// UncertaintyFromDepth returns the magnitude uncertainty 2.5·log10(1 + 1/snr).
// A zero snr yields +Inf.
func UncertaintyFromDepth(model domain.SNRModel, mag, m5 float64) float64 {
	snr := SignalToNoise(model, mag, m5)
	return 2.5 * math.Log10(1+1/snr)
}

// photometry binds a filter's zero-point and the survey's SNR model.
type photometry struct {
	model    domain.SNRModel
	baseline float64
}

// magnitudes writes the magnitude of each flux into dst, which must be as long.
func (p photometry) magnitudes(dst, fluxes []float64) error {
	for k, f := range fluxes {
		m, err := ToMagnitude(f, p.baseline)
		if err != nil {
			return fmt.Errorf("sample %d: %w", k, err)
		}
		dst[k] = m
	}
	return nil
}

// uncertainty returns the error of a sample whose reference magnitude is mag.
func (p photometry) uncertainty(mag, m5 float64) float64 {
	return UncertaintyFromDepth(p.model, mag, m5)
}

// referenceMagnitude returns the magnitude the error model is evaluated at
// for sample k of a raw sampled curve: the reference flux in the Uncertainty
// slot when the simulator supplied one, else the sampled flux itself.
func (p photometry) referenceMagnitude(curve domain.LightCurve, k int, mag float64) (float64, error) {
	if !curve.HasUncertainty() {
		return mag, nil
	}
	ref, err := ToMagnitude(curve.Uncertainty[k], p.baseline)
	if err != nil {
		return 0, fmt.Errorf("reference sample %d: %w", k, err)
	}
	return ref, nil
}
