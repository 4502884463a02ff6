package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch <config>",
	Short: "Re-run the pipeline when inputs change",
	Long: `Runs the pipeline once, then again whenever the configuration file,
the cadence directory or the raw curve directory changes.
Changes are debounced and runs never overlap. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addRunFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	opts, err := runOptions(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Watching inputs of %s...\n", args[0])
	err = watchService.Watch(cmd.Context(), opts, func(summary *domain.RunSummary, err error) {
		if err != nil {
			cmd.Println(errorStyle.Render(fmt.Sprintf("run failed: %v", err)))
			return
		}
		printSummary(cmd, summary)
		cmd.Println()
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
