package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

func testHistory() *mockHistory {
	started := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &mockHistory{
		runs: []domain.Run{
			{
				ID: "run-b", ConfigPath: "b.json", Status: domain.RunPartial, Objects: 4,
				StartedAt: started.Add(time.Hour), FinishedAt: started.Add(time.Hour + 1500*time.Millisecond),
				Error: "1 object outputs failed",
			},
			{ID: "run-a", ConfigPath: "a.json", Status: domain.RunSucceeded, Objects: 2, StartedAt: started},
		},
		failures: []domain.ObjectFailure{
			{Index: 2, Stage: "compressed", Err: errors.New("output i/o error: disk full")},
		},
	}
}

func TestRunsCmd_Lists(t *testing.T) {
	h := testHistory()
	withServices(t, Services{History: h})

	out, err := execute(t, nil, "runs", "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, h.limit)
	assert.Contains(t, out, "run-b")
	assert.Contains(t, out, "run-a")
	assert.Contains(t, out, "b.json")
	assert.Less(t, strings.Index(out, "run-b"), strings.Index(out, "run-a"))
}

func TestRunsCmd_Empty(t *testing.T) {
	withServices(t, Services{History: &mockHistory{}})

	out, err := execute(t, nil, "runs")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestRunsShowCmd_PrintsFailures(t *testing.T) {
	withServices(t, Services{History: testHistory()})

	out, err := execute(t, nil, "runs", "show", "run-b")

	require.NoError(t, err)
	assert.Contains(t, out, "Run run-b")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "1 object outputs failed")
	assert.Contains(t, out, "Failed objects")
	assert.Contains(t, out, "disk full")
}

func TestRunsShowCmd_Unknown(t *testing.T) {
	withServices(t, Services{History: testHistory()})

	_, err := execute(t, nil, "runs", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunsCmd_ServiceNotConfigured(t *testing.T) {
	withServices(t, Services{})

	_, err := execute(t, nil, "runs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run history not configured")
}
