package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Pipeline: pipelineService,
		Watcher:  watchService,
		Survey:   surveyService,
		Inspect:  inspector,
		History:  runHistory,
		Settings: settingsService,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

func testSummary(failures ...domain.ObjectFailure) *domain.RunSummary {
	status := domain.RunSucceeded
	if len(failures) > 0 {
		status = domain.RunPartial
	}
	return &domain.RunSummary{
		Run: domain.Run{
			ID:        "run-1",
			OutputDir: "out",
			Filters:   []string{"g", "r"},
			Objects:   2,
			SNRModel:  domain.SNRExponential,
			Status:    status,
			StartedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		Uncompressed: &domain.WriteReport{Stage: "uncompressed", Written: 2},
		Compressed:   &domain.WriteReport{Stage: "compressed", Written: 2 - len(failures), Failures: failures},
	}
}

// mockPipeline records the options it was run with.
type mockPipeline struct {
	opts    []driving.RunOptions
	summary *domain.RunSummary
	err     error
}

func (m *mockPipeline) Run(_ context.Context, opts driving.RunOptions) (*domain.RunSummary, error) {
	m.opts = append(m.opts, opts)
	return m.summary, m.err
}

// mockWatcher reports each result in turn.
type mockWatcher struct {
	opts    driving.RunOptions
	results []error
	err     error
}

func (m *mockWatcher) Watch(_ context.Context, opts driving.RunOptions, report func(*domain.RunSummary, error)) error {
	m.opts = opts
	for _, err := range m.results {
		if err != nil {
			report(nil, err)
			continue
		}
		report(testSummary(), nil)
	}
	return m.err
}

type mockSurvey struct {
	params   *domain.SurveyParameters
	survey   *domain.SurveyConfiguration
	profiles []domain.ProfileParameters
	err      error
}

func (m *mockSurvey) Survey(_ context.Context, _ string) (*domain.SurveyParameters, *domain.SurveyConfiguration, error) {
	return m.params, m.survey, m.err
}

func (m *mockSurvey) Parameters(_ string) (*domain.SurveyParameters, error) {
	return m.params, m.err
}

func (m *mockSurvey) Profiles(_ *domain.SurveyParameters) ([]domain.ProfileParameters, error) {
	return m.profiles, nil
}

type mockInspector struct {
	opts driving.InspectOptions
	got  *domain.Inspection
	err  error
}

func (m *mockInspector) Inspect(_ context.Context, opts driving.InspectOptions) (*domain.Inspection, error) {
	m.opts = opts
	return m.got, m.err
}

type mockHistory struct {
	runs     []domain.Run
	failures []domain.ObjectFailure
	limit    int
	err      error
}

func (m *mockHistory) List(_ context.Context, limit int) ([]domain.Run, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockHistory) Get(_ context.Context, id string) (*domain.Run, []domain.ObjectFailure, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], m.failures, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}
