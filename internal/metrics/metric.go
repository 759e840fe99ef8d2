package metrics

import "github.com/san-kum/projsim/internal/ballistics"

// Metric accumulates a scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(s ballistics.Sample)
	Value() float64
	Reset()
}

// Default returns fresh instances of every flight metric for gravity g.
func Default(g float64) []Metric {
	return []Metric{NewEnergyLoss(g), NewMinSpeed()}
}

// Collect resets each metric, feeds it every sample of tr and returns the
// values keyed by name.
func Collect(tr *ballistics.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		if tr != nil {
			for _, s := range tr.Samples {
				m.Observe(s)
			}
		}
		out[m.Name()] = m.Value()
	}
	return out
}
