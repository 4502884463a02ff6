package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// Ensure SurveyLoader implements the interface.
var _ driven.SurveyLoader = (*SurveyLoader)(nil)

// document mirrors the survey configuration file. Pointers mark the
// fields whose absence must be detected.
type document struct {
	Vel         *velocity `json:"vel" toml:"vel" yaml:"vel"`
	Path2Dates  *string   `json:"path_2_dates" toml:"path_2_dates" yaml:"path_2_dates"`
	Filters     []string  `json:"filters" toml:"filters" yaml:"filters"`
	ErrBase     []float64 `json:"errbase" toml:"errbase" yaml:"errbase"`
	Maps        []mapItem `json:"maps" toml:"maps" yaml:"maps"`
	LRest       []float64 `json:"lrest" toml:"lrest" yaml:"lrest"`
	Output      *output   `json:"output" toml:"output" yaml:"output"`
	Path2Output string    `json:"path_2_output" toml:"path_2_output" yaml:"path_2_output"`
	Path2Raw    string    `json:"path_2_raw" toml:"path_2_raw" yaml:"path_2_raw"`
	Profile     profile   `json:"profile" toml:"profile" yaml:"profile"`
	Path2Custom string    `json:"path_2_custom" toml:"path_2_custom" yaml:"path_2_custom"`
	SNRModel    string    `json:"snr_model" toml:"snr_model" yaml:"snr_model"`
	Encoding    *encoding `json:"encoding" toml:"encoding" yaml:"encoding"`
}

type velocity struct {
	Years     *float64 `json:"years" toml:"years" yaml:"years"`
	RA        float64  `json:"ra" toml:"ra" yaml:"ra"`
	Dec       float64  `json:"dec" toml:"dec" yaml:"dec"`
	SigmaL    float64  `json:"sigma_l" toml:"sigma_l" yaml:"sigma_l"`
	SigmaS    float64  `json:"sigma_s" toml:"sigma_s" yaml:"sigma_s"`
	SigmaDisp float64  `json:"sigma_disp" toml:"sigma_disp" yaml:"sigma_disp"`
	Zl        float64  `json:"zl" toml:"zl" yaml:"zl"`
	Zs        float64  `json:"zs" toml:"zs" yaml:"zs"`
	Dl        float64  `json:"Dl" toml:"Dl" yaml:"Dl"`
	Ds        float64  `json:"Ds" toml:"Ds" yaml:"Ds"`
	Dls       float64  `json:"Dls" toml:"Dls" yaml:"Dls"`
}

type mapItem struct {
	ID   string  `json:"id" toml:"id" yaml:"id"`
	Mass float64 `json:"mass" toml:"mass" yaml:"mass"`
}

type output struct {
	NLC          int   `json:"Nlc" toml:"Nlc" yaml:"Nlc"`
	Seed         int   `json:"seed" toml:"seed" yaml:"seed"`
	FullData     *bool `json:"full_data" toml:"full_data" yaml:"full_data"`
	DegradedData *bool `json:"degraded_data" toml:"degraded_data" yaml:"degraded_data"`
	Velocities   bool  `json:"velocities" toml:"velocities" yaml:"velocities"`
}

type profile struct {
	Type        string    `json:"type" toml:"type" yaml:"type"`
	Shape       string    `json:"shape" toml:"shape" yaml:"shape"`
	Incl        float64   `json:"incl" toml:"incl" yaml:"incl"`
	Orient      float64   `json:"orient" toml:"orient" yaml:"orient"`
	S0          float64   `json:"s0" toml:"s0" yaml:"s0"`
	L0          float64   `json:"l0" toml:"l0" yaml:"l0"`
	N           float64   `json:"n" toml:"n" yaml:"n"`
	MBH         float64   `json:"mbh" toml:"mbh" yaml:"mbh"`
	FEdd        float64   `json:"fedd" toml:"fedd" yaml:"fedd"`
	Eta         float64   `json:"eta" toml:"eta" yaml:"eta"`
	PixSizePhys []float64 `json:"profPixSizePhys" toml:"profPixSizePhys" yaml:"profPixSizePhys"`
}

type encoding struct {
	FullValue          int `json:"full_value" toml:"full_value" yaml:"full_value"`
	SampledTime        int `json:"sampled_time" toml:"sampled_time" yaml:"sampled_time"`
	SampledValue       int `json:"sampled_value" toml:"sampled_value" yaml:"sampled_value"`
	SampledUncertainty int `json:"sampled_uncertainty" toml:"sampled_uncertainty" yaml:"sampled_uncertainty"`
}

// SurveyLoader reads survey configuration documents. The format follows the
// file extension: .toml, .yaml or .yml; anything else is read as JSON.
type SurveyLoader struct {
	env Env
}

// NewSurveyLoader creates a loader applying the given environment overrides.
func NewSurveyLoader(env Env) *SurveyLoader {
	return &SurveyLoader{env: env}
}

// Load parses the document at path.
func (l *SurveyLoader) Load(path string) (*domain.SurveyParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	params, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.env.Apply(params)
	return params, nil
}

// Parse decodes a document in the format named by ext and validates the
// required fields.
func Parse(data []byte, ext string) (*domain.SurveyParameters, error) {
	var doc document
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return doc.params()
}

func (d *document) params() (*domain.SurveyParameters, error) {
	switch {
	case d.Vel == nil || d.Vel.Years == nil:
		return nil, fmt.Errorf("%w: missing vel.years", domain.ErrConfiguration)
	case d.Path2Dates == nil:
		return nil, fmt.Errorf("%w: missing path_2_dates", domain.ErrConfiguration)
	case len(d.Filters) == 0:
		return nil, fmt.Errorf("%w: missing filters", domain.ErrConfiguration)
	case len(d.ErrBase) < len(d.Filters):
		return nil, fmt.Errorf("%w: errbase has %d entries for %d filters",
			domain.ErrConfiguration, len(d.ErrBase), len(d.Filters))
	}

	p := &domain.SurveyParameters{
		Years:            *d.Vel.Years,
		CadenceDir:       *d.Path2Dates,
		Filters:          d.Filters,
		ErrBase:          d.ErrBase,
		OutputDir:        d.Path2Output,
		RawDir:           d.Path2Raw,
		CustomProfileDir: d.Path2Custom,
		Velocity: domain.VelocityParameters{
			RA:        d.Vel.RA,
			Dec:       d.Vel.Dec,
			SigmaL:    d.Vel.SigmaL,
			SigmaS:    d.Vel.SigmaS,
			SigmaDisp: d.Vel.SigmaDisp,
			Zl:        d.Vel.Zl,
			Zs:        d.Vel.Zs,
			Dl:        d.Vel.Dl,
			Ds:        d.Vel.Ds,
			Dls:       d.Vel.Dls,
		},
		Profile: domain.ProfileSettings{
			Type:        d.Profile.Type,
			Shape:       d.Profile.Shape,
			Incl:        d.Profile.Incl,
			Orient:      d.Profile.Orient,
			S0:          d.Profile.S0,
			L0:          d.Profile.L0,
			N:           d.Profile.N,
			MBH:         d.Profile.MBH,
			FEdd:        d.Profile.FEdd,
			Eta:         d.Profile.Eta,
			PixSizePhys: d.Profile.PixSizePhys,
		},
		Generic: domain.GenericParameters{
			LRest:        d.LRest,
			FullData:     true,
			DegradedData: true,
		},
	}
	for _, m := range d.Maps {
		p.Generic.Maps = append(p.Generic.Maps, domain.MapEntry{ID: m.ID, Mass: m.Mass})
	}
	if d.Output != nil {
		p.Generic.NumCurves = d.Output.NLC
		p.Generic.Seed = d.Output.Seed
		p.Generic.Velocities = d.Output.Velocities
		if d.Output.FullData != nil {
			p.Generic.FullData = *d.Output.FullData
		}
		if d.Output.DegradedData != nil {
			p.Generic.DegradedData = *d.Output.DegradedData
		}
	}

	if d.SNRModel != "" {
		p.SNRModel = domain.SNRModel(d.SNRModel)
		if !p.SNRModel.IsValid() {
			return nil, fmt.Errorf("%w: unknown snr_model %q", domain.ErrConfiguration, d.SNRModel)
		}
	}
	if d.Encoding != nil {
		policy, err := d.Encoding.policy()
		if err != nil {
			return nil, err
		}
		p.Encoding = policy
	}
	return p, nil
}

// policy overlays the configured widths on the default policy.
func (e *encoding) policy() (domain.EncodingPolicy, error) {
	p := domain.DefaultEncodingPolicy()
	fields := []struct {
		bits int
		dst  *domain.Width
	}{
		{e.FullValue, &p.Full.Value},
		{e.SampledTime, &p.Sampled.Time},
		{e.SampledValue, &p.Sampled.Value},
		{e.SampledUncertainty, &p.Sampled.Uncertainty},
	}
	for _, f := range fields {
		if f.bits == 0 {
			continue
		}
		w, err := domain.ParseWidth(f.bits)
		if err != nil {
			return domain.EncodingPolicy{}, err
		}
		*f.dst = w
	}
	return p, nil
}
