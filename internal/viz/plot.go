package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/optim"
)

type Series struct {
	Label      string
	Trajectory *ballistics.Trajectory
}

// PlotTrajectories draws height against distance for every series on one
// Braille canvas of width x height cells, with the ground at y=0.
func PlotTrajectories(series []Series, width, height int, theme Theme) string {
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}

	minX, maxX, maxY := 0.0, 0.0, 0.0
	drawable := 0
	for _, s := range series {
		if s.Trajectory == nil || s.Trajectory.Len() < 2 {
			continue
		}
		drawable++
		for _, p := range s.Trajectory.Samples {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if drawable == 0 {
		return ""
	}
	if maxX-minX == 0 {
		maxX = minX + 1
	}
	if maxY == 0 {
		maxY = 1
	}

	c := NewCanvas(width, height)
	w := float64(c.DotsWide() - 1)
	h := float64(c.DotsHigh() - 1)
	dot := func(x, y float64) (int, int) {
		return int(math.Round((x - minX) / (maxX - minX) * w)), int(math.Round((maxY - y) / maxY * h))
	}

	c.SetPen(-1)
	gx0, gy := dot(minX, 0)
	gx1, _ := dot(maxX, 0)
	c.DrawLine(gx0, gy, gx1, gy)

	for i, s := range series {
		if s.Trajectory == nil || s.Trajectory.Len() < 2 {
			continue
		}
		c.SetPen(i)
		px, py := dot(s.Trajectory.Samples[0].X, s.Trajectory.Samples[0].Y)
		for _, p := range s.Trajectory.Samples[1:] {
			x, y := dot(p.X, p.Y)
			c.DrawLine(px, py, x, y)
			px, py = x, y
		}
	}

	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	var b strings.Builder
	for i, line := range c.Lines(theme) {
		label := strings.Repeat(" ", 9)
		switch i {
		case 0:
			label = fmt.Sprintf("%7.1f m", maxY)
		case c.Height - 1:
			label = fmt.Sprintf("%7.1f m", 0.0)
		}
		b.WriteString(muted.Render(label) + " ┤" + line + "\n")
	}

	left := fmt.Sprintf("%.1f m", minX)
	right := fmt.Sprintf("%.1f m", maxX)
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", 11) + muted.Render(left+strings.Repeat(" ", gap)+right) + "\n")

	b.WriteString(Legend(series, theme))
	return b.String()
}

// Legend lists each series with its colour, angle and range.
func Legend(series []Series, theme Theme) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		if s.Trajectory == nil {
			continue
		}
		marker := lipgloss.NewStyle().Foreground(theme.SeriesColor(i)).Render("●")
		parts = append(parts, fmt.Sprintf("%s %s %.1f° %.2f m", marker, s.Label, s.Trajectory.Params.Angle, s.Trajectory.Range))
	}
	return strings.Repeat(" ", 11) + strings.Join(parts, "   ") + "\n"
}

// RangeCurve plots range against scanned angle.
func RangeCurve(curve []optim.Point, width, height int) string {
	if len(curve) == 0 {
		return ""
	}
	data := make([]float64, len(curve))
	for i, p := range curve {
		data[i] = p.Range
	}
	caption := fmt.Sprintf("range (m) vs angle %.1f°..%.1f°", curve[0].Angle, curve[len(curve)-1].Angle)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// CurveSparkline condenses range against angle into one line, labelled with
// the scanned span.
func CurveSparkline(curve []optim.Point, width int) string {
	if len(curve) == 0 {
		return ""
	}
	data := make([]float64, len(curve))
	for i, p := range curve {
		data[i] = p.Range
	}
	return MetricLabel.Render(fmt.Sprintf("%5.1f° ", curve[0].Angle)) +
		SparklineChart(data, width) +
		MetricLabel.Render(fmt.Sprintf(" %.1f°", curve[len(curve)-1].Angle))
}

// HeightProfiles resamples every series onto a shared distance axis and
// plots the heights together; a series reads zero beyond its landing point.
func HeightProfiles(series []Series, width, height int) string {
	maxX := 0.0
	for _, s := range series {
		if s.Trajectory != nil {
			maxX = math.Max(maxX, s.Trajectory.Range)
		}
	}
	if maxX <= 0 || width < 2 {
		return ""
	}

	colors := []asciigraph.AnsiColor{asciigraph.Gray, asciigraph.DeepSkyBlue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow}
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if s.Trajectory == nil || s.Trajectory.Len() < 2 {
			continue
		}
		data = append(data, resample(s.Trajectory, maxX, width))
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(colors[:min(len(data), len(colors))]...),
		asciigraph.Caption(fmt.Sprintf("height (m) over 0..%.1f m", maxX)),
	)
}

// resample returns n heights at evenly spaced distances in [0, maxX],
// interpolating between samples.
func resample(tr *ballistics.Trajectory, maxX float64, n int) []float64 {
	out := make([]float64, n)
	j := 0
	for i := range out {
		x := maxX * float64(i) / float64(n-1)
		for j < tr.Len()-2 && tr.Samples[j+1].X < x {
			j++
		}
		a, b := tr.Samples[j], tr.Samples[j+1]
		switch {
		case x > tr.Final().X:
			out[i] = 0
		case b.X == a.X:
			out[i] = b.Y
		default:
			out[i] = math.Max(0, a.Y+(b.Y-a.Y)*(x-a.X)/(b.X-a.X))
		}
	}
	return out
}
