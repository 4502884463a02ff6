// Package cli provides the lcsynth command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
	"github.com/custodia-labs/lcsynth/internal/logger"
)

var version = "dev"

var verbose bool

// Services wired in by main. Commands fail with "... not configured" when
// the service they need is nil.
var (
	pipelineService driving.Pipeline
	watchService    driving.Watcher
	surveyService   driving.SurveyService
	inspector       driving.Inspector
	runHistory      driving.RunHistory
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "lcsynth",
	Short: "Synthesise multi-filter survey light curves",
	Long: `lcsynth turns raw simulated light curves into survey-realistic output.

It samples curves on per-filter observing cadences, converts flux to
magnitudes with depth-based uncertainties, and writes both text tables
and reduced-precision binary curves with a per-object header.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Pipeline driving.Pipeline
	Watcher  driving.Watcher
	Survey   driving.SurveyService
	Inspect  driving.Inspector
	History  driving.RunHistory
	Settings driving.SettingsService
}

// SetServices wires the services used by the commands.
func SetServices(s Services) {
	pipelineService = s.Pipeline
	watchService = s.Watcher
	surveyService = s.Survey
	inspector = s.Inspect
	runHistory = s.History
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Cancelling ctx interrupts a running
// pipeline between objects.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
