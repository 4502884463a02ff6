package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lcsynth/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

func TestSurveyService_Survey(t *testing.T) {
	loader := memory.NewSurveyLoader()
	loader.Add("survey.toml", *testParams())
	reader := memory.NewCadenceReader()
	reader.Add("g", []float64{120, 130}, []float64{25, 25})
	reader.Add("r", []float64{100}, []float64{24})
	service := NewSurveyService(loader, reader)

	params, survey, err := service.Survey(context.Background(), "survey.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"g", "r"}, params.Filters)
	assert.Equal(t, 100.0, survey.TMin)
	assert.Equal(t, []float64{20, 30}, survey.Cadences[0].Epochs)
	assert.Equal(t, 10*domain.DaysPerYear, survey.TMax)
}

func TestSurveyService_Errors(t *testing.T) {
	reader := memory.NewCadenceReader()
	reader.FailOn("g", domain.ErrCadenceRead)
	loader := memory.NewSurveyLoader()
	loader.Add("survey.toml", *testParams())
	service := NewSurveyService(loader, reader)

	_, _, err := service.Survey(context.Background(), "other.toml")
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, _, err = service.Survey(context.Background(), "survey.toml")
	assert.True(t, errors.Is(err, domain.ErrCadenceRead))
}

func TestSurveyService_Profiles(t *testing.T) {
	service := NewSurveyService(memory.NewSurveyLoader(), memory.NewCadenceReader())

	profiles, err := service.Profiles(profileParams(domain.ProfileParametric))
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestSurveyService_Parameters(t *testing.T) {
	loader := memory.NewSurveyLoader()
	loader.Add("survey.toml", *testParams())
	service := NewSurveyService(loader, memory.NewCadenceReader())

	params, err := service.Parameters("survey.toml")
	require.NoError(t, err)
	assert.Equal(t, 10.0, params.Years)

	_, err = service.Parameters("none.toml")
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
