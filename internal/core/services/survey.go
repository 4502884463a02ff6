package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

// Ensure SurveyService implements the interface.
var _ driving.SurveyService = (*SurveyService)(nil)

// SurveyService loads a survey for inspection without writing output.
type SurveyService struct {
	loader   driven.SurveyLoader
	cadences *CadenceLoader
}

// NewSurveyService creates a new survey service.
func NewSurveyService(loader driven.SurveyLoader, reader driven.CadenceReader) *SurveyService {
	return &SurveyService{
		loader:   loader,
		cadences: NewCadenceLoader(reader),
	}
}

// Survey parses the configuration and loads the cadences.
func (s *SurveyService) Survey(
	ctx context.Context,
	configPath string,
) (*domain.SurveyParameters, *domain.SurveyConfiguration, error) {
	params, err := s.loader.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	survey, err := s.cadences.Load(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("load survey: %w", err)
	}
	return params, survey, nil
}

// Parameters parses the configuration without reading cadences.
func (s *SurveyService) Parameters(configPath string) (*domain.SurveyParameters, error) {
	params, err := s.loader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return params, nil
}

// Profiles builds the per-wavelength emission profile parameters.
func (s *SurveyService) Profiles(params *domain.SurveyParameters) ([]domain.ProfileParameters, error) {
	return BuildProfiles(params)
}
