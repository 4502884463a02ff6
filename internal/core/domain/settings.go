package domain

// AppSettings holds the tool-level defaults kept in ~/.lcsynth/config.toml.
// A survey configuration document overrides them per run.
type AppSettings struct {
	// DataDir holds the run ledger database.
	DataDir string

	// OutputDir is the default destination when the survey names none.
	OutputDir string

	// SNRModel is the default uncertainty model.
	SNRModel SNRModel

	// Encoding is the default reduced-precision policy.
	Encoding EncodingPolicy

	// Verbose enables progress logging without --verbose.
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
// An empty DataDir means ~/.lcsynth/data.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		OutputDir: ".",
		SNRModel:  DefaultSNRModel,
		Encoding:  DefaultEncodingPolicy(),
	}
}

// AllSNRModels returns all available signal-to-noise models.
func AllSNRModels() []SNRModel {
	return []SNRModel{
		SNRExponential,
		SNRLiteral,
	}
}
