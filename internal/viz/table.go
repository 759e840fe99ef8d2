package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/projsim/internal/analysis"
	"github.com/san-kum/projsim/internal/optim"
)

// ComparisonTable renders one row per scenario. The row with the longest
// range is highlighted.
func ComparisonTable(scenarios []optim.Scenario, theme Theme) string {
	best := -1
	rows := make([][]string, 0, len(scenarios))
	for i, s := range scenarios {
		st := analysis.Analyze(s.Trajectory)
		eff := 0.0
		if s.Trajectory != nil {
			eff = analysis.Efficiency(s.Trajectory)
			if best < 0 || s.Trajectory.Range > scenarios[best].Trajectory.Range {
				best = i
			}
		}
		rows = append(rows, []string{
			s.Label,
			fmt.Sprintf("%.1f°", s.Angle),
			fmt.Sprintf("%.2f m", st.Range),
			fmt.Sprintf("%.2f m", st.ApexHeight),
			fmt.Sprintf("%.2f s", st.FlightTime),
			fmt.Sprintf("%.0f%%", eff*100),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Muted)).
		Headers("Scenario", "Angle", "Range", "Apex", "Flight time", "Efficiency").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == best:
				return cell.Foreground(theme.Success).Bold(true)
			case col == 0:
				return cell.Foreground(theme.SeriesColor(row))
			}
			return cell
		})
	return t.Render()
}

// Report renders the flight statistics of a single trajectory.
func Report(title string, st analysis.Stats, theme Theme) string {
	lines := []string{
		Metric("range", st.Range, "m"),
		Metric("apex", st.ApexHeight, "m") + Subtle.Render(fmt.Sprintf(" at x=%.2f m, t=%.2f s", st.ApexX, st.ApexTime)),
		Metric("flight time", st.FlightTime, "s") + Subtle.Render(fmt.Sprintf(" (up %.2f s, down %.2f s)", st.AscentTime, st.DescentTime)),
		Metric("impact speed", st.ImpactSpeed, "m/s") + Subtle.Render(fmt.Sprintf(" at %.1f°", st.ImpactAngle)),
		MetricLabel.Render("samples: ") + MetricValue.Render(fmt.Sprint(st.Samples)),
	}
	if !st.Landed {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render("step limit reached before landing"))
	}
	return BoxWithTitle(title, strings.Join(lines, "\n"), 52, theme)
}

// EfficiencyBar shows range as a fraction of the drag-free range.
func EfficiencyBar(eff float64, width int) string {
	return MetricLabel.Render("vs vacuum ") + ProgressBar(eff, width) + MetricValue.Render(fmt.Sprintf(" %.0f%%", eff*100))
}
