package metrics

import (
	"math"

	"github.com/san-kum/projsim/internal/ballistics"
)

// EnergyLoss is the fraction of the launch's specific mechanical energy
// (v²/2 + g·y) gone by the last observed sample. Without drag it only
// reflects integration error.
type EnergyLoss struct {
	name    string
	gravity float64
	initial float64
	current float64
	samples int
}

func NewEnergyLoss(gravity float64) *EnergyLoss {
	return &EnergyLoss{name: "energy_loss", gravity: gravity}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s ballistics.Sample) {
	energy := 0.5*(s.VX*s.VX+s.VY*s.VY) + e.gravity*s.Y
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / math.Abs(e.initial)
}

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// MinSpeed is the lowest ground speed seen, normally reached near the apex.
type MinSpeed struct {
	name string
	min  float64
	seen bool
}

func NewMinSpeed() *MinSpeed {
	return &MinSpeed{name: "min_speed"}
}

func (m *MinSpeed) Name() string { return m.name }

func (m *MinSpeed) Observe(s ballistics.Sample) {
	v := math.Hypot(s.VX, s.VY)
	if !m.seen || v < m.min {
		m.min = v
		m.seen = true
	}
}

func (m *MinSpeed) Value() float64 { return m.min }

func (m *MinSpeed) Reset() {
	m.min = 0
	m.seen = false
}
