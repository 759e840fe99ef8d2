package optim

import (
	"fmt"
	"math"
)

// Grid is an evenly spaced set of launch angles in degrees, Start and Stop
// inclusive.
type Grid struct {
	Start float64 `yaml:"start" json:"start"`
	Stop  float64 `yaml:"stop" json:"stop"`
	Step  float64 `yaml:"step" json:"step"`
}

var (
	// DefaultGrid scans 0° to 89.5° in half-degree steps.
	DefaultGrid = Grid{Start: 0, Stop: 89.5, Step: 0.5}
	// PresetGrid skips the flat 0° shot, which never leaves the ground.
	PresetGrid = Grid{Start: 1, Stop: 89.5, Step: 0.5}
)

func (g Grid) Validate() error {
	if g.Step <= 0 || math.IsNaN(g.Step) || math.IsInf(g.Step, 0) {
		return fmt.Errorf("grid step must be positive, got %g", g.Step)
	}
	if g.Stop < g.Start {
		return fmt.Errorf("grid stop %g below start %g", g.Stop, g.Start)
	}
	return nil
}

// Len is the number of candidates in the grid. An invalid grid is empty.
func (g Grid) Len() int {
	if g.Validate() != nil {
		return 0
	}
	return int(math.Floor((g.Stop-g.Start)/g.Step+1e-9)) + 1
}

// Angles lists the candidates in ascending order. Each angle is computed from
// its index so rounding does not accumulate across the scan.
func (g Grid) Angles() []float64 {
	n := g.Len()
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = g.Start + float64(i)*g.Step
	}
	return angles
}
