package domain

// DaysPerYear converts the configured survey duration into days.
const DaysPerYear = 365.25

// FilterCadence holds the observation epochs and 5-sigma limiting depths
// of one filter. Epochs are assumed ascending; this is not re-verified.
type FilterCadence struct {
	// Filter is the filter name (e.g. "g").
	Filter string

	// Epochs are observation times in days. After loading they are relative
	// to the survey's TMin.
	Epochs []float64

	// Depths are the limiting magnitudes, parallel to Epochs.
	Depths []float64
}

// Len returns the number of observations.
func (c FilterCadence) Len() int {
	return len(c.Epochs)
}

// Empty returns true if the filter has no observations.
func (c FilterCadence) Empty() bool {
	return len(c.Epochs) == 0
}

// Window returns how many epochs fall at or before tmax.
// Relies on ascending epochs.
func (c FilterCadence) Window(tmax float64) int {
	n := 0
	for _, t := range c.Epochs {
		if t > tmax {
			break
		}
		n++
	}
	return n
}

// SurveyConfiguration is the loaded survey: filters, their rebased cadences,
// the observation baseline and the per-filter magnitude zero-points.
// Immutable once built by the cadence loader.
type SurveyConfiguration struct {
	// Filters lists filter names in aggregation order.
	Filters []string

	// Cadences holds one cadence per filter, parallel to Filters.
	Cadences []FilterCadence

	// TMax is the maximum observation baseline in days.
	TMax float64

	// TMin is the global time origin subtracted from every epoch.
	TMin float64

	// ErrBase holds the per-filter magnitude zero-points, parallel to Filters.
	ErrBase []float64
}

// NumFilters returns the number of filters.
func (s *SurveyConfiguration) NumFilters() int {
	return len(s.Filters)
}

// FilterIndex returns the position of a filter, or -1 if unknown.
func (s *SurveyConfiguration) FilterIndex(name string) int {
	for i, f := range s.Filters {
		if f == name {
			return i
		}
	}
	return -1
}

// AbsoluteEpoch restores an epoch relative to TMin to its absolute value.
func (s *SurveyConfiguration) AbsoluteEpoch(t float64) float64 {
	return s.TMin + t
}

// Baseline returns the zero-point of filter j.
func (s *SurveyConfiguration) Baseline(j int) float64 {
	return s.ErrBase[j]
}
