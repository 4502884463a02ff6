package domain

// SurveyParameters is the parsed survey configuration document.
// It is plain data; the cadence loader turns it into a SurveyConfiguration.
type SurveyParameters struct {
	// Years is the survey duration in years.
	Years float64

	// CadenceDir locates one <filter>.dat cadence file per filter. It is a
	// directory, or a file name prefix such as "dates/lsst_" when it does
	// not name one.
	CadenceDir string

	// Filters lists filter names in aggregation order.
	Filters []string

	// ErrBase holds per-filter magnitude zero-points.
	ErrBase []float64

	// OutputDir is where tables and compressed curves are written.
	OutputDir string

	// RawDir holds the simulator's raw flux curves.
	RawDir string

	// SNRModel selects the uncertainty model.
	SNRModel SNRModel

	// Encoding is the reduced-precision policy for compressed output.
	Encoding EncodingPolicy

	Generic  GenericParameters
	Velocity VelocityParameters
	Profile  ProfileSettings

	// CustomProfileDir prefixes per-filter FITS profiles for custom profiles.
	CustomProfileDir string
}

// MapEntry identifies one magnification map and its characteristic mass.
type MapEntry struct {
	ID   string
	Mass float64
}

// GenericParameters are the catalogue and output switches.
type GenericParameters struct {
	Maps         []MapEntry
	LRest        []float64
	NumCurves    int
	Seed         int
	FullData     bool
	DegradedData bool
	Velocities   bool
}

// VelocityParameters describe the lens/source geometry and velocity dispersions.
type VelocityParameters struct {
	RA        float64
	Dec       float64
	SigmaL    float64
	SigmaS    float64
	SigmaDisp float64
	Zl        float64
	Zs        float64
	Dl        float64
	Ds        float64
	Dls       float64
}

// ProfileSettings is the emission-profile block of the configuration.
type ProfileSettings struct {
	Type   string
	Shape  string
	Incl   float64
	Orient float64

	// parametric
	S0 float64
	L0 float64
	N  float64

	// ssdisc
	MBH  float64
	FEdd float64
	Eta  float64

	// custom, one per filter
	PixSizePhys []float64
}

// Profile types.
const (
	ProfileParametric = "parametric"
	ProfileSSDisc     = "ssdisc"
	ProfileCustom     = "custom"
)

// ProfileParameters configure the emission profile for one rest wavelength.
type ProfileParameters struct {
	Type       string
	Shape      string
	Incl       float64
	Orient     float64
	Parametric []float64
	LRest      float64

	// Set for custom profiles only.
	Filename    string
	PixSizePhys float64
}
