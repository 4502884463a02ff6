package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

var (
	runInputDir         string
	runOutputDir        string
	runSNRModel         string
	runSkipUncompressed bool
	runSkipCompressed   bool
)

var runCmd = &cobra.Command{
	Use:   "run <config>",
	Short: "Run the synthesis pipeline",
	Long: `Loads the survey configuration and cadences, then writes the
uncompressed tables and the compressed curves for every object.

Configuration and cadence errors stop the run before any output is written.
Objects whose output fails are listed and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runInputDir, "input", "i", "", "raw curve directory (overrides path_2_raw)")
	cmd.Flags().StringVarP(&runOutputDir, "output", "o", "", "output directory (overrides path_2_output)")
	cmd.Flags().StringVar(&runSNRModel, "snr", "", "uncertainty model: exponential or literal")
	cmd.Flags().BoolVar(&runSkipUncompressed, "skip-tables", false, "do not write the text tables")
	cmd.Flags().BoolVar(&runSkipCompressed, "skip-compressed", false, "do not write the compressed curves")
}

func runOptions(configPath string) (driving.RunOptions, error) {
	model := domain.SNRModel(runSNRModel)
	if model != "" && !model.IsValid() {
		return driving.RunOptions{}, fmt.Errorf("invalid snr model: %s", runSNRModel)
	}
	return driving.RunOptions{
		ConfigPath:       configPath,
		InputDir:         runInputDir,
		OutputDir:        runOutputDir,
		SNRModel:         model,
		SkipUncompressed: runSkipUncompressed,
		SkipCompressed:   runSkipCompressed,
	}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	opts, err := runOptions(args[0])
	if err != nil {
		return err
	}

	summary, err := pipelineService.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printSummary(cmd, summary)
	if n := len(summary.Failures()); n > 0 {
		return fmt.Errorf("%d object outputs failed", n)
	}
	return nil
}
