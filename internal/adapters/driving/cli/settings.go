package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage tool settings",
	Long: `View and change the defaults used when a survey configuration leaves
them unset: output directory, ledger data directory, uncertainty model and
encoding widths.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSNRCmd = &cobra.Command{
	Use:   "snr [model]",
	Short: "Set the default uncertainty model",
	Long: `Set the model used to derive uncertainties from limiting depth.

Available models:
  exponential - SNR = 5·10^(-0.4·(m - m5)) (default)
  literal     - SNR = 5·(-0.4·(m - m5))^10

Without an argument the model is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSNR,
}

var (
	encodingFullValue          int
	encodingSampledTime        int
	encodingSampledValue       int
	encodingSampledUncertainty int
)

var settingsEncodingCmd = &cobra.Command{
	Use:   "encoding",
	Short: "Set the default encoding widths",
	Long: `Set the bit widths (8, 16 or 32) used by the compressed writer when a
configuration has no encoding block. Unset flags keep their current value.`,
	RunE: runSettingsEncoding,
}

var settingsOutputCmd = &cobra.Command{
	Use:   "output-dir <dir>",
	Short: "Set the default output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsOutput,
}

var settingsDataCmd = &cobra.Command{
	Use:   "data-dir <dir>",
	Short: "Set the run ledger directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsData,
}

func init() {
	f := settingsEncodingCmd.Flags()
	f.IntVar(&encodingFullValue, "full-value", 0, "full curve value width")
	f.IntVar(&encodingSampledTime, "sampled-time", 0, "sampled time width")
	f.IntVar(&encodingSampledValue, "sampled-value", 0, "sampled magnitude width")
	f.IntVar(&encodingSampledUncertainty, "sampled-uncertainty", 0, "sampled uncertainty width")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSNRCmd)
	settingsCmd.AddCommand(settingsEncodingCmd)
	settingsCmd.AddCommand(settingsOutputCmd)
	settingsCmd.AddCommand(settingsDataCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printTitle(cmd, "Current Settings")
	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	printField(cmd, "Data dir", dataDir)
	printField(cmd, "Output dir", settings.OutputDir)
	printField(cmd, "SNR model", settings.SNRModel.Description())
	printField(cmd, "Verbose", settings.Verbose)
	cmd.Println()

	e := settings.Encoding
	printTitle(cmd, "Encoding")
	printField(cmd, "Full value", formatWidth(e.Full.Value))
	printField(cmd, "Sampled time", formatWidth(e.Sampled.Time))
	printField(cmd, "Sampled mag", formatWidth(e.Sampled.Value))
	printField(cmd, "Sampled err", formatWidth(e.Sampled.Uncertainty))
	return nil
}

func runSettingsSNR(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var model domain.SNRModel
	if len(args) == 1 {
		model = domain.SNRModel(args[0])
	} else {
		models := domain.AllSNRModels()
		cmd.Println("Select SNR Model")
		for i, m := range models {
			cmd.Printf("  %d. %s\n", i+1, m.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(models), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		model = models[idx-1]
	}

	if err := settingsService.SetSNRModel(model); err != nil {
		return fmt.Errorf("failed to set snr model: %w", err)
	}
	cmd.Printf("SNR model set to: %s\n", model.Description())
	return nil
}

func runSettingsEncoding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	policy := settings.Encoding
	for _, u := range []struct {
		flag string
		bits int
		dst  *domain.Width
	}{
		{"full-value", encodingFullValue, &policy.Full.Value},
		{"sampled-time", encodingSampledTime, &policy.Sampled.Time},
		{"sampled-value", encodingSampledValue, &policy.Sampled.Value},
		{"sampled-uncertainty", encodingSampledUncertainty, &policy.Sampled.Uncertainty},
	} {
		if !cmd.Flags().Changed(u.flag) {
			continue
		}
		w, err := domain.ParseWidth(u.bits)
		if err != nil {
			return fmt.Errorf("--%s: %w", u.flag, err)
		}
		*u.dst = w
	}

	if err := settingsService.SetEncoding(policy); err != nil {
		return fmt.Errorf("failed to set encoding: %w", err)
	}
	cmd.Printf("Encoding set to: full %d, sampled %d/%d/%d bits\n",
		policy.Full.Value, policy.Sampled.Time, policy.Sampled.Value, policy.Sampled.Uncertainty)
	return nil
}

func runSettingsOutput(cmd *cobra.Command, args []string) error {
	return updateSettings(cmd, func(s *domain.AppSettings) { s.OutputDir = args[0] },
		"Output directory set to: "+args[0])
}

func runSettingsData(cmd *cobra.Command, args []string) error {
	return updateSettings(cmd, func(s *domain.AppSettings) { s.DataDir = args[0] },
		"Data directory set to: "+args[0])
}

func updateSettings(cmd *cobra.Command, apply func(*domain.AppSettings), done string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	apply(settings)
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println(done)
	return nil
}

func formatWidth(w domain.Width) string {
	return fmt.Sprintf("%d bits", w)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
