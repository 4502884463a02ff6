package domain

// Variant distinguishes the theoretical curve from the survey-sampled one.
type Variant string

// Light-curve variants.
const (
	// VariantFull is the noise-free curve, one sample per simulation step.
	VariantFull Variant = "full"

	// VariantSampled is the curve evaluated at survey observation epochs.
	VariantSampled Variant = "sampled"
)

// IsValid returns true if the variant is recognised.
func (v Variant) IsValid() bool {
	return v == VariantFull || v == VariantSampled
}

// String returns the string representation.
func (v Variant) String() string {
	return string(v)
}

// LightCurve is one object's time series in one filter.
// Time and Value are parallel. Uncertainty is either empty or parallel too;
// in raw sampled input it carries the reference flux used for the error model.
type LightCurve struct {
	Time        []float64
	Value       []float64
	Uncertainty []float64
}

// Len returns the number of samples.
func (c LightCurve) Len() int {
	return len(c.Value)
}

// Validate checks that the parallel arrays agree in length.
func (c LightCurve) Validate() error {
	if len(c.Time) != len(c.Value) {
		return ErrLengthMismatch
	}
	if len(c.Uncertainty) != 0 && len(c.Uncertainty) != len(c.Value) {
		return ErrLengthMismatch
	}
	return nil
}

// HasUncertainty returns true if Uncertainty is populated.
func (c LightCurve) HasUncertainty() bool {
	return len(c.Uncertainty) > 0 && len(c.Uncertainty) == len(c.Value)
}

// Collection is an object-indexed set of curves for one filter and variant.
// The mother collection carries no filter and only supplies the object count.
type Collection struct {
	Variant Variant
	Filter  string
	Curves  []LightCurve
}

// NumCurves returns the number of objects in the collection.
func (c *Collection) NumCurves() int {
	if c == nil {
		return 0
	}
	return len(c.Curves)
}

// Curve returns the curve of object i.
func (c *Collection) Curve(i int) LightCurve {
	return c.Curves[i]
}

// NewMother builds a mother collection for n objects.
func NewMother(n int) *Collection {
	return &Collection{Curves: make([]LightCurve, n)}
}

// Segment is the contiguous range of an aggregated array contributed by one filter.
type Segment struct {
	Filter string
	Offset int
	Length int
}

// End returns the exclusive end offset.
func (s Segment) End() int {
	return s.Offset + s.Length
}

// AggregatedCurve is one object's curve concatenated across filters.
type AggregatedCurve struct {
	LightCurve
	Segments []Segment
}

// Valid returns true once the curve has been laid out across filters.
// Objects whose aggregation failed keep a zero AggregatedCurve.
func (c AggregatedCurve) Valid() bool {
	return len(c.Segments) > 0
}

// Counts returns the per-filter segment lengths.
func (c AggregatedCurve) Counts() []int {
	counts := make([]int, len(c.Segments))
	for j, s := range c.Segments {
		counts[j] = s.Length
	}
	return counts
}

// SegmentValues returns the values of segment j.
func (c AggregatedCurve) SegmentValues(j int) []float64 {
	s := c.Segments[j]
	return c.Value[s.Offset:s.End()]
}

// AggregatedCollection holds one aggregated curve per object.
// Every curve owns its arrays; none aliases an input collection.
type AggregatedCollection struct {
	Variant Variant
	Filters []string
	Curves  []AggregatedCurve
}

// NumCurves returns the number of objects.
func (c *AggregatedCollection) NumCurves() int {
	if c == nil {
		return 0
	}
	return len(c.Curves)
}
