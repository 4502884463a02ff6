package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Width(14)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

func statusStyle(s domain.RunStatus) lipgloss.Style {
	switch s {
	case domain.RunSucceeded:
		return successStyle
	case domain.RunPartial:
		return warningStyle
	case domain.RunFailed:
		return errorStyle
	default:
		return lipgloss.NewStyle()
	}
}

func printTitle(cmd *cobra.Command, title string) {
	cmd.Println(titleStyle.Render(title))
}

func printField(cmd *cobra.Command, label string, value any) {
	cmd.Printf("%s %v\n", labelStyle.Render(label), value)
}

func printSummary(cmd *cobra.Command, s *domain.RunSummary) {
	printTitle(cmd, "Run "+s.Run.ID)
	printField(cmd, "Status", statusStyle(s.Run.Status).Render(string(s.Run.Status)))
	printField(cmd, "Objects", s.Run.Objects)
	printField(cmd, "Filters", s.Run.Filters)
	printField(cmd, "SNR model", s.Run.SNRModel)
	printField(cmd, "Time origin", s.Run.TMin)
	printField(cmd, "Output", s.Run.OutputDir)
	printReport(cmd, "Tables", s.Uncompressed)
	printReport(cmd, "Compressed", s.Compressed)

	for _, f := range s.Failures() {
		cmd.Println(errorStyle.Render(f.Error()))
	}
}

func printReport(cmd *cobra.Command, label string, r *domain.WriteReport) {
	if r == nil {
		printField(cmd, label, "skipped")
		return
	}
	printField(cmd, label, formatReport(r))
}

func formatReport(r *domain.WriteReport) string {
	if len(r.Failures) == 0 {
		return fmt.Sprintf("%d written", r.Written)
	}
	return fmt.Sprintf("%d written, %s", r.Written, warningStyle.Render(fmt.Sprintf("%d failed", len(r.Failures))))
}
