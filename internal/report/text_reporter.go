package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/rejot-dev/montyhall/internal/color"
)

// TextReporter implements Reporter for terminal output
type TextReporter struct {
	options *TextReporterOptions
}

type TextReporterOptions struct {
	HideTable bool
}

// NewTextReporter creates a new text reporter
func NewTextReporter(options *TextReporterOptions) *TextReporter {
	if options == nil {
		options = &TextReporterOptions{}
	}
	return &TextReporter{
		options: options,
	}
}

// Report prints the classic score lines followed by a table of rates.
func (r *TextReporter) Report(w io.Writer, s *Summary) error {
	// Colors only when w is a terminal
	renderer := lipgloss.NewRenderer(w)
	boldCyan := renderer.NewStyle().Bold(true).Foreground(color.Cyan)
	muted := renderer.NewStyle().Foreground(color.DarkGray)
	boldGreen := renderer.NewStyle().Bold(true).Foreground(color.DarkGreen)
	boldRed := renderer.NewStyle().Bold(true).Foreground(color.DarkRed)

	// The first three lines keep the classic format for scripts
	fmt.Fprintf(w, "N = %d\n", s.Iterations)
	fmt.Fprintf(w, "Stay strategy won %d times\n", s.Stay.Wins)
	fmt.Fprintf(w, "Switch strategy won %d times\n", s.Switch.Wins)

	if r.options.HideTable {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, boldCyan.Render("🚪 MONTY HALL SIMULATION"))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strategy", "Wins", "Losses", "Rate", fmt.Sprintf("%s interval", percent(s.Confidence)), "Expected"})
	for _, result := range []StrategyResult{s.Stay, s.Switch} {
		table.Append([]string{
			result.Name,
			fmt.Sprintf("%d", result.Wins),
			fmt.Sprintf("%d", result.Losses),
			percent(result.Rate),
			fmt.Sprintf("%s – %s", percent(result.Lower), percent(result.Upper)),
			percent(result.Expected),
		})
	}
	table.Render()

	fmt.Fprintln(w)
	if s.SwitchDominates {
		fmt.Fprintln(w, boldGreen.Render("✅ Switching beat staying."))
	} else {
		fmt.Fprintln(w, boldRed.Render("⚠️  Switching did not beat staying in this run."))
	}
	fmt.Fprintln(w, muted.Render(fmt.Sprintf("seed %d, %d worker(s)", s.Seed, s.Workers)))

	return nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
