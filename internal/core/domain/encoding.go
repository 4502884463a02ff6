package domain

import "fmt"

// Width is the bit width of a reduced-precision field.
type Width uint8

// Supported widths.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// IsValid returns true for a supported width.
func (w Width) IsValid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// Bytes returns the encoded size of one sample.
func (w Width) Bytes() int {
	return int(w) / 8
}

// Levels returns the largest quantised value.
func (w Width) Levels() uint64 {
	return 1<<uint(w) - 1
}

// ParseWidth converts a bit count from configuration.
func ParseWidth(bits int) (Width, error) {
	w := Width(bits)
	if bits < 0 || bits > 255 || !w.IsValid() {
		return 0, fmt.Errorf("%w: unsupported width %d", ErrConfiguration, bits)
	}
	return w, nil
}

// FieldWidths holds the width of each encoded field of a curve.
// A zero width means the field is not encoded.
type FieldWidths struct {
	Time        Width
	Value       Width
	Uncertainty Width
}

// EncodingPolicy names the reduced width used for every field of the
// full and sampled aggregated curves.
type EncodingPolicy struct {
	Full    FieldWidths
	Sampled FieldWidths
}

// DefaultEncodingPolicy returns the standard survey encoding:
// full magnitudes in 8 bits; sampled time in 16 bits, magnitude and
// uncertainty in 8 bits.
func DefaultEncodingPolicy() EncodingPolicy {
	return EncodingPolicy{
		Full:    FieldWidths{Value: Width8},
		Sampled: FieldWidths{Time: Width16, Value: Width8, Uncertainty: Width8},
	}
}

// Validate checks that every required field has a supported width.
func (p EncodingPolicy) Validate() error {
	if !p.Full.Value.IsValid() {
		return fmt.Errorf("%w: full value width %d", ErrConfiguration, p.Full.Value)
	}
	if p.Full.Time != 0 || p.Full.Uncertainty != 0 {
		return fmt.Errorf("%w: full curves encode values only", ErrConfiguration)
	}
	for name, w := range map[string]Width{
		"sampled time":        p.Sampled.Time,
		"sampled value":       p.Sampled.Value,
		"sampled uncertainty": p.Sampled.Uncertainty,
	} {
		if !w.IsValid() {
			return fmt.Errorf("%w: %s width %d", ErrConfiguration, name, w)
		}
	}
	return nil
}
