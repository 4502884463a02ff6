package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its failed objects",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	runs, err := runHistory.List(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i := range runs {
		r := &runs[i]
		cmd.Printf("%s  %s  %-9s  %5d objects  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			statusStyle(r.Status).Render(string(r.Status)),
			r.Objects,
			r.ConfigPath,
		)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	run, failures, err := runHistory.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	printTitle(cmd, "Run "+run.ID)
	printField(cmd, "Status", statusStyle(run.Status).Render(string(run.Status)))
	printField(cmd, "Config", run.ConfigPath)
	printField(cmd, "Output", run.OutputDir)
	printField(cmd, "Filters", run.Filters)
	printField(cmd, "Objects", run.Objects)
	printField(cmd, "SNR model", run.SNRModel)
	printField(cmd, "Started", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		printField(cmd, "Duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	if run.Error != "" {
		printField(cmd, "Error", errorStyle.Render(run.Error))
	}

	if len(failures) > 0 {
		cmd.Println()
		printTitle(cmd, "Failed objects")
		for _, f := range failures {
			cmd.Printf("  %5d  %-12s %v\n", f.Index, f.Stage, f.Err)
		}
	}
	return nil
}
