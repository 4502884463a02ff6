package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lcsynth/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

type pipelineFixture struct {
	loader  *memory.SurveyLoader
	reader  *memory.CadenceReader
	sources *memory.CurveSourceFactory
	outputs *memory.OutputFactory
	ledger  *memory.RunLedger
	service *PipelineService
}

func newPipelineFixture(t *testing.T, params *domain.SurveyParameters) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		loader:  memory.NewSurveyLoader(),
		reader:  memory.NewCadenceReader(),
		sources: memory.NewCurveSourceFactory(testRaw(2, [2]int{3, 5})),
		outputs: memory.NewOutputFactory(),
		ledger:  memory.NewRunLedger(),
	}
	f.loader.Add("survey.json", *params)
	f.reader.Add("g", []float64{59000, 59010, 59020, 59030, 59040}, fill(5, 25))
	f.reader.Add("r", []float64{59005, 59015, 59025, 59035, 59045}, fill(5, 24.5))
	f.service = NewPipelineService(f.loader, f.reader, f.sources, f.outputs, f.ledger, domain.DefaultAppSettings())
	f.service.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestPipelineService_Run(t *testing.T) {
	f := newPipelineFixture(t, testParams())
	ctx := context.Background()

	summary, err := f.service.Run(ctx, driving.RunOptions{ConfigPath: "survey.json"})
	require.NoError(t, err)

	assert.Equal(t, domain.RunSucceeded, summary.Run.Status)
	assert.Equal(t, 2, summary.Run.Objects)
	assert.Equal(t, 59000.0, summary.Run.TMin)
	assert.Equal(t, domain.SNRExponential, summary.Run.SNRModel)
	assert.NotEmpty(t, summary.Run.ID)
	assert.Equal(t, 2, summary.Uncompressed.Written)
	assert.Equal(t, 2, summary.Compressed.Written)
	assert.Empty(t, summary.Failures())

	assert.Equal(t, []string{"raw"}, f.sources.Opened)
	for _, dir := range f.outputs.Dirs() {
		assert.Equal(t, "out", dir)
	}

	h, err := f.outputs.HeaderStore.ReadHeader(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "3 5 10", h.Lines[0])

	rows, ok := f.outputs.TableWriter.Table("tableg_0.dat")
	require.True(t, ok)
	assert.Equal(t, 59010.0, rows[1][0])

	enc, ok := f.outputs.CurveEncoder.Encoded(0)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultEncodingPolicy(), enc.Policy)

	run, err := f.ledger.GetRun(ctx, summary.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, run.Status)
	assert.False(t, run.FinishedAt.IsZero())
}

func TestPipelineService_Overrides(t *testing.T) {
	params := testParams()
	params.OutputDir = ""
	params.Encoding = domain.EncodingPolicy{
		Full:    domain.FieldWidths{Value: domain.Width16},
		Sampled: domain.FieldWidths{Time: domain.Width32, Value: domain.Width16, Uncertainty: domain.Width8},
	}
	f := newPipelineFixture(t, params)

	summary, err := f.service.Run(context.Background(), driving.RunOptions{
		ConfigPath: "survey.json",
		InputDir:   "raw2",
		OutputDir:  "elsewhere",
		SNRModel:   domain.SNRLiteral,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SNRLiteral, summary.Run.SNRModel)
	assert.Equal(t, []string{"raw2"}, f.sources.Opened)
	assert.Contains(t, f.outputs.Dirs(), "elsewhere")
	enc, _ := f.outputs.CurveEncoder.Encoded(0)
	assert.Equal(t, params.Encoding, enc.Policy)
}

func TestPipelineService_DefaultOutputDir(t *testing.T) {
	params := testParams()
	params.OutputDir = ""
	f := newPipelineFixture(t, params)

	_, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})
	require.NoError(t, err)

	assert.Contains(t, f.outputs.Dirs(), ".")
}

func TestPipelineService_PathFlags(t *testing.T) {
	params := testParams()
	params.Generic.FullData = false
	f := newPipelineFixture(t, params)

	summary, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})
	require.NoError(t, err)
	assert.Nil(t, summary.Uncompressed)
	assert.NotNil(t, summary.Compressed)
	assert.Empty(t, f.outputs.TableWriter.Names())

	f = newPipelineFixture(t, testParams())
	summary, err = f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json", SkipCompressed: true})
	require.NoError(t, err)
	assert.NotNil(t, summary.Uncompressed)
	assert.Nil(t, summary.Compressed)
	_, ok := f.outputs.CurveEncoder.Encoded(0)
	assert.False(t, ok)
}

func TestPipelineService_ConfigurationError(t *testing.T) {
	f := newPipelineFixture(t, testParams())

	_, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "missing.json"})

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Empty(t, f.outputs.Dirs())
	runs, _ := f.ledger.ListRuns(context.Background(), 0)
	assert.Empty(t, runs)
}

func TestPipelineService_CadenceErrorAborts(t *testing.T) {
	f := newPipelineFixture(t, testParams())
	f.reader.FailOn("r", domain.ErrCadenceRead)

	_, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})

	assert.True(t, errors.Is(err, domain.ErrCadenceRead))
	assert.Empty(t, f.outputs.Dirs())
	assert.Empty(t, f.sources.Opened)

	runs, _ := f.ledger.ListRuns(context.Background(), 0)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "cadence")
}

func TestPipelineService_MissingRawDir(t *testing.T) {
	params := testParams()
	params.RawDir = ""
	f := newPipelineFixture(t, params)

	_, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestPipelineService_PartialRun(t *testing.T) {
	f := newPipelineFixture(t, testParams())
	f.outputs.CurveEncoder.FailOn(1, domain.ErrOutputIO)
	f.outputs.TableWriter.FailOn("tablet_0.dat", domain.ErrOutputIO)
	ctx := context.Background()

	summary, err := f.service.Run(ctx, driving.RunOptions{ConfigPath: "survey.json"})
	require.NoError(t, err)

	assert.Equal(t, domain.RunPartial, summary.Run.Status)
	assert.Equal(t, "2 object outputs failed", summary.Run.Error)
	require.Len(t, summary.Failures(), 2)

	failures, err := f.ledger.Failures(ctx, summary.Run.ID)
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, 0, failures[0].Index)
	assert.Equal(t, StageUncompressed, failures[0].Stage)
	assert.Equal(t, StageCompressed, failures[1].Stage)
}

func TestPipelineService_NoLedger(t *testing.T) {
	f := newPipelineFixture(t, testParams())
	service := NewPipelineService(f.loader, f.reader, f.sources, f.outputs, nil, domain.DefaultAppSettings())

	summary, err := service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, summary.Run.Status)
}

func TestPipelineService_RawSourceError(t *testing.T) {
	f := newPipelineFixture(t, testParams())
	f.sources.Source.Err = domain.ErrNotFound

	_, err := f.service.Run(context.Background(), driving.RunOptions{ConfigPath: "survey.json"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, f.outputs.Dirs())
}
