package driving

import "github.com/custodia-labs/lcsynth/internal/core/domain"

// SettingsService manages tool settings.
type SettingsService interface {
	// Get retrieves current settings, filling defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetSNRModel updates the default uncertainty model.
	SetSNRModel(model domain.SNRModel) error

	// SetEncoding updates the default encoding policy.
	SetEncoding(policy domain.EncodingPolicy) error
}
