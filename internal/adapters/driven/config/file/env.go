package file

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// Env holds the LCSYNTH_* environment overrides.
type Env struct {
	CadenceDir string `env:"LCSYNTH_CADENCE_DIR"`
	OutputDir  string `env:"LCSYNTH_OUTPUT_DIR"`
	RawDir     string `env:"LCSYNTH_RAW_DIR"`
	SNRModel   string `env:"LCSYNTH_SNR_MODEL"`
	DataDir    string `env:"LCSYNTH_DATA_DIR"`
	Verbose    bool   `env:"LCSYNTH_VERBOSE"`
}

// ParseEnv loads the overrides from the process environment.
func ParseEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overlays the set overrides onto params.
func (e Env) Apply(params *domain.SurveyParameters) {
	if e.CadenceDir != "" {
		params.CadenceDir = e.CadenceDir
	}
	if e.OutputDir != "" {
		params.OutputDir = e.OutputDir
	}
	if e.RawDir != "" {
		params.RawDir = e.RawDir
	}
	if e.SNRModel != "" {
		params.SNRModel = domain.SNRModel(e.SNRModel)
	}
}
