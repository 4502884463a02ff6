package domain

// SNRModel selects the signal-to-noise expression used to turn a magnitude
// and a limiting depth into a photometric uncertainty.
type SNRModel string

// Available signal-to-noise models.
const (
	// SNRExponential uses snr = 5·10^(0.4·(depth − mag)).
	SNRExponential SNRModel = "exponential"

	// SNRLiteral uses snr = 5·(−0.4·(mag − depth))^10, reproducing the numbers
	// of the legacy survey tables.
	SNRLiteral SNRModel = "literal"
)

// DefaultSNRModel is used when a configuration does not name one.
const DefaultSNRModel = SNRExponential

// IsValid returns true if the model is recognised.
func (m SNRModel) IsValid() bool {
	switch m {
	case SNRExponential, SNRLiteral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SNRModel) String() string {
	return string(m)
}

// Description returns a human-readable description of the model.
func (m SNRModel) Description() string {
	switch m {
	case SNRExponential:
		return "Exponential (5·10^(0.4·(m5 − m)))"
	case SNRLiteral:
		return "Literal power law (5·(−0.4·dm)^10)"
	default:
		return "Unknown"
	}
}
