package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driving"
)

var (
	inspectConfig string
	inspectOutput string
	inspectRows   int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <index>",
	Short: "Decode an object's compressed curves",
	Long: `Reads back comp_full_<index>.bin, comp_sampled_<index>.bin and the
comp_p_<index>.dat header and prints the decoded curves.

With --config the segments are named after the configured filters and
sampled magnitudes are also shown as flux.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectConfig, "config", "c", "", "survey configuration")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "output directory (overrides path_2_output)")
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 5, "sampled rows to print per filter")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspector == nil {
		return errors.New("inspect service not configured")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid object index: %s", args[0])
	}

	got, err := inspector.Inspect(cmd.Context(), driving.InspectOptions{
		ConfigPath: inspectConfig,
		OutputDir:  inspectOutput,
		Index:      index,
	})
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	obj := got.Object
	printTitle(cmd, fmt.Sprintf("Object %d", got.Index))
	for k, line := range obj.Header.Lines {
		printField(cmd, fmt.Sprintf("Header %d", k+1), line)
	}
	cmd.Println()

	printTitle(cmd, "Full")
	printSegments(cmd, obj.Full)
	cmd.Println()

	printTitle(cmd, "Sampled")
	printSegments(cmd, obj.Sampled)
	for j, seg := range obj.Sampled.Segments {
		cmd.Printf("  [%s]\n", seg.Filter)
		n := min(inspectRows, seg.Length)
		for k := 0; k < n; k++ {
			at := seg.Offset + k
			cmd.Printf("    %12.4f %10.4f %8.4f", obj.Sampled.Time[at], obj.Sampled.Value[at], obj.Sampled.Uncertainty[at])
			if got.Fluxes != nil {
				cmd.Printf(" %12.6e", got.Fluxes[j][k])
			}
			cmd.Println()
		}
	}
	return nil
}

func printSegments(cmd *cobra.Command, c domain.AggregatedCurve) {
	for j, seg := range c.Segments {
		values := c.SegmentValues(j)
		if len(values) == 0 {
			printField(cmd, seg.Filter, "0 samples")
			continue
		}
		lo, hi := values[0], values[0]
		for _, v := range values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
		printField(cmd, seg.Filter, fmt.Sprintf("%d samples, %.4f..%.4f", seg.Length, lo, hi))
	}
}
