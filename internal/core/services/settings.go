package services

import (
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir            = "data_dir"
	keyVerbose            = "verbose"
	keyOutputDir          = "output_dir"
	keySNRModel           = "snr.model"
	keyFullValue          = "encoding.full_value"
	keySampledTime        = "encoding.sampled_time"
	keySampledValue       = "encoding.sampled_value"
	keySampledUncertainty = "encoding.sampled_uncertainty"
)

// SettingsService manages tool settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		DataDir:   s.getString(keyDataDir, defaults.DataDir),
		OutputDir: s.getString(keyOutputDir, defaults.OutputDir),
		SNRModel:  s.getSNRModel(defaults.SNRModel),
		Verbose:   s.configStore.GetBool(keyVerbose),
		Encoding: domain.EncodingPolicy{
			Full: domain.FieldWidths{
				Value: s.getWidth(keyFullValue, defaults.Encoding.Full.Value),
			},
			Sampled: domain.FieldWidths{
				Time:        s.getWidth(keySampledTime, defaults.Encoding.Sampled.Time),
				Value:       s.getWidth(keySampledValue, defaults.Encoding.Sampled.Value),
				Uncertainty: s.getWidth(keySampledUncertainty, defaults.Encoding.Sampled.Uncertainty),
			},
		},
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.DataDir != "" {
		if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
			return fmt.Errorf("save data_dir: %w", err)
		}
	}
	if err := s.configStore.Set(keyOutputDir, settings.OutputDir); err != nil {
		return fmt.Errorf("save output_dir: %w", err)
	}
	if err := s.configStore.Set(keyVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save verbose: %w", err)
	}
	if err := s.configStore.Set(keySNRModel, settings.SNRModel.String()); err != nil {
		return fmt.Errorf("save snr model: %w", err)
	}

	widths := map[string]domain.Width{
		keyFullValue:          settings.Encoding.Full.Value,
		keySampledTime:        settings.Encoding.Sampled.Time,
		keySampledValue:       settings.Encoding.Sampled.Value,
		keySampledUncertainty: settings.Encoding.Sampled.Uncertainty,
	}
	for key, w := range widths {
		if err := s.configStore.Set(key, int(w)); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return nil
}

// SetSNRModel updates the default uncertainty model.
func (s *SettingsService) SetSNRModel(model domain.SNRModel) error {
	if !model.IsValid() {
		return fmt.Errorf("invalid snr model: %s", model)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.SNRModel = model
	return s.Save(settings)
}

// SetEncoding updates the default encoding policy.
func (s *SettingsService) SetEncoding(policy domain.EncodingPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Encoding = policy
	return s.Save(settings)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getWidth(key string, defaultVal domain.Width) domain.Width {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	w, err := domain.ParseWidth(val)
	if err != nil {
		return defaultVal
	}
	return w
}

func (s *SettingsService) getSNRModel(defaultVal domain.SNRModel) domain.SNRModel {
	val := s.configStore.GetString(keySNRModel)
	if val == "" {
		return defaultVal
	}
	model := domain.SNRModel(val)
	if !model.IsValid() {
		return defaultVal
	}
	return model
}
