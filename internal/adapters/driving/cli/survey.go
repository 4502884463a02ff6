package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var cadenceCmd = &cobra.Command{
	Use:   "cadence <config>",
	Short: "Show the survey cadences",
	Long: `Loads the per-filter cadence files named by the configuration and
prints the global time origin and each filter's observation span.
Epochs are shown relative to the time origin.`,
	Args: cobra.ExactArgs(1),
	RunE: runCadence,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles <config>",
	Short: "Show velocity and emission profile parameters",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(cadenceCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runCadence(cmd *cobra.Command, args []string) error {
	if surveyService == nil {
		return errors.New("survey service not configured")
	}

	_, survey, err := surveyService.Survey(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load survey: %w", err)
	}

	printTitle(cmd, "Survey")
	printField(cmd, "Time origin", fmt.Sprintf("%.6f", survey.TMin))
	printField(cmd, "Duration", fmt.Sprintf("%.2f days", survey.TMax))
	cmd.Println()

	for j, c := range survey.Cadences {
		if c.Empty() {
			cmd.Printf("  %-4s %6d epochs\n", c.Filter, 0)
			continue
		}
		cmd.Printf("  %-4s %6d epochs  %12.4f .. %-12.4f depth %.2f..%.2f  errbase %.2f\n",
			c.Filter, c.Len(), c.Epochs[0], c.Epochs[c.Len()-1],
			slices.Min(c.Depths), slices.Max(c.Depths), survey.Baseline(j))
	}
	return nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	if surveyService == nil {
		return errors.New("survey service not configured")
	}

	params, err := surveyService.Parameters(args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	v := params.Velocity
	printTitle(cmd, "Velocities")
	printField(cmd, "RA, Dec", fmt.Sprintf("%g, %g", v.RA, v.Dec))
	printField(cmd, "Sigma l/s", fmt.Sprintf("%g / %g", v.SigmaL, v.SigmaS))
	printField(cmd, "Dispersion", v.SigmaDisp)
	printField(cmd, "Redshifts", fmt.Sprintf("zl=%g zs=%g", v.Zl, v.Zs))
	printField(cmd, "Distances", fmt.Sprintf("Dl=%g Ds=%g Dls=%g", v.Dl, v.Ds, v.Dls))
	cmd.Println()

	g := params.Generic
	printTitle(cmd, "Output")
	printField(cmd, "Curves", g.NumCurves)
	printField(cmd, "Seed", g.Seed)
	printField(cmd, "Tables", g.FullData)
	printField(cmd, "Compressed", g.DegradedData)
	for _, m := range g.Maps {
		printField(cmd, "Map "+m.ID, fmt.Sprintf("mass %g", m.Mass))
	}
	cmd.Println()

	profiles, err := surveyService.Profiles(params)
	if err != nil {
		return fmt.Errorf("failed to build profiles: %w", err)
	}

	printTitle(cmd, "Profiles")
	if len(profiles) == 0 {
		cmd.Println("No rest wavelengths configured.")
		return nil
	}
	for _, p := range profiles {
		cmd.Printf("  %-10s lrest=%-8g shape=%s incl=%g orient=%g", p.Type, p.LRest, p.Shape, p.Incl, p.Orient)
		if p.Filename != "" {
			cmd.Printf(" file=%s pixel=%g", p.Filename, p.PixSizePhys)
		} else {
			cmd.Printf(" params=%v", p.Parametric)
		}
		cmd.Println()
	}
	return nil
}
