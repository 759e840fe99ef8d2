package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/projsim/internal/ballistics"
)

// Palette cycles through series colours in order.
var Palette = []string{"#ff4444", "#00ccff", "#aaaaaa", "#00ff88", "#ffcc00"}

type Series struct {
	Label      string
	Trajectory *ballistics.Trajectory
}

// TrajectoriesSVG draws every series on shared axes with the ground line at
// y=0 and a legend in the top right corner.
func TrajectoriesSVG(series []Series, width, height int) string {
	minX, maxX, maxY, ok := bounds(series)
	if !ok {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.05
	minX -= rangeX * pad
	maxX += rangeX * pad
	minY := -rangeY * pad
	maxY += rangeY * pad
	rangeX = maxX - minX
	rangeY = maxY - minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#666666" stroke-width="1"/>
`, width, height, width, height, py(0), width, py(0)))

	for i, s := range series {
		if s.Trajectory == nil || s.Trajectory.Len() < 2 {
			continue
		}
		color := Palette[i%len(Palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range s.Trajectory.Samples {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.X), py(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(p.X), py(p.Y)))
			}
		}
		sb.WriteString("\"/>\n")

		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12" text-anchor="end">%s (%.2f m)</text>
`, width-10, 20+16*i, color, html.EscapeString(s.Label), s.Trajectory.Range))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(series []Series) (minX, maxX, maxY float64, ok bool) {
	for _, s := range series {
		if s.Trajectory == nil || s.Trajectory.Len() < 2 {
			continue
		}
		for _, p := range s.Trajectory.Samples {
			if !ok {
				minX, maxX, maxY = p.X, p.X, p.Y
				ok = true
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if maxY < 0 {
		maxY = 0
	}
	return minX, maxX, maxY, ok
}
