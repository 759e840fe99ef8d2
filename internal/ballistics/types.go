package ballistics

import (
	"fmt"
	"math"
)

const (
	DefaultAirDensity = 1.225
	DefaultGravity    = 9.81
	DefaultDt         = 0.005
	DefaultMaxSteps   = 100000

	// Below this airspeed drag is treated as zero.
	MinAirspeed = 1e-6
)

// Params describes one launch. Wind is the horizontal velocity of the air
// mass; positive values blow in the direction of launch (tailwind).
type Params struct {
	Speed float64 `json:"speed" yaml:"speed"`
	Angle float64 `json:"angle" yaml:"angle"`
	Wind  float64 `json:"wind" yaml:"wind"`

	Mass      float64 `json:"mass" yaml:"mass"`
	DragCoeff float64 `json:"drag_coeff" yaml:"drag_coeff"`
	Area      float64 `json:"area" yaml:"area"`

	AirDensity float64 `json:"air_density" yaml:"air_density"`
	Gravity    float64 `json:"gravity" yaml:"gravity"`
	Dt         float64 `json:"dt" yaml:"dt"`
	MaxSteps   int     `json:"max_steps" yaml:"max_steps"`
}

// DefaultParams returns a 10 cm sphere of 0.5 kg at sea level with the
// launch speed and angle left at zero.
func DefaultParams() Params {
	return Params{
		Mass:       0.5,
		DragCoeff:  0.47,
		Area:       math.Pi * 0.05 * 0.05,
		AirDensity: DefaultAirDensity,
		Gravity:    DefaultGravity,
		Dt:         DefaultDt,
		MaxSteps:   DefaultMaxSteps,
	}
}

// WithAngle returns a copy of p launched at angle degrees.
func (p Params) WithAngle(angle float64) Params {
	p.Angle = angle
	return p
}

// DragConstant is 0.5*rho*Cd*A/m, the factor that multiplied by airspeed
// squared gives drag deceleration.
func (p Params) DragConstant() float64 {
	return 0.5 * p.AirDensity * p.DragCoeff * p.Area / p.Mass
}

// IdealRange is the drag-free range on flat ground, v0^2 sin(2θ)/g.
func (p Params) IdealRange() float64 {
	return p.Speed * p.Speed * math.Sin(2*p.Angle*math.Pi/180) / p.Gravity
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"speed":       p.Speed,
		"angle":       p.Angle,
		"wind":        p.Wind,
		"mass":        p.Mass,
		"drag_coeff":  p.DragCoeff,
		"area":        p.Area,
		"air_density": p.AirDensity,
		"gravity":     p.Gravity,
		"dt":          p.Dt,
		"max_steps":   float64(p.MaxSteps),
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "speed":
		p.Speed = value
	case "angle":
		p.Angle = value
	case "wind":
		p.Wind = value
	case "mass":
		p.Mass = value
	case "drag_coeff":
		p.DragCoeff = value
	case "area":
		p.Area = value
	case "air_density":
		p.AirDensity = value
	case "gravity":
		p.Gravity = value
	case "dt":
		p.Dt = value
	case "max_steps":
		p.MaxSteps = int(value)
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

type State struct {
	X, Y   float64
	VX, VY float64
}

// Airborne reports whether the state is on or above the ground.
func (s State) Airborne() bool { return s.Y >= 0 }

func (s State) Speed() float64 { return math.Hypot(s.VX, s.VY) }

// Sample is one recorded point of a trajectory.
type Sample struct {
	T  float64 `json:"t"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

func (s Sample) State() State { return State{X: s.X, Y: s.Y, VX: s.VX, VY: s.VY} }

type Trajectory struct {
	Params  Params   `json:"params"`
	Samples []Sample `json:"samples"`
	Range   float64  `json:"range"`
	// Landed is false when the step ceiling stopped the run before the
	// projectile returned to the ground.
	Landed bool `json:"landed"`
	Steps  int  `json:"steps"`
}

func (t *Trajectory) Len() int { return len(t.Samples) }

func (t *Trajectory) Final() Sample {
	if len(t.Samples) == 0 {
		return Sample{}
	}
	return t.Samples[len(t.Samples)-1]
}

// XY splits the samples into parallel coordinate slices for plotting.
func (t *Trajectory) XY() (xs, ys []float64) {
	xs = make([]float64, len(t.Samples))
	ys = make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		xs[i] = s.X
		ys[i] = s.Y
	}
	return xs, ys
}
