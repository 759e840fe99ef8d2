package analysis

import (
	"math"

	"github.com/san-kum/projsim/internal/ballistics"
)

// Stats summarises one trajectory.
type Stats struct {
	Range       float64 `json:"range"`
	ApexHeight  float64 `json:"apex_height"`
	ApexX       float64 `json:"apex_x"`
	ApexTime    float64 `json:"apex_time"`
	FlightTime  float64 `json:"flight_time"`
	AscentTime  float64 `json:"ascent_time"`
	DescentTime float64 `json:"descent_time"`
	// ImpactSpeed and ImpactAngle describe the velocity at the final sample;
	// the angle is measured in degrees below the horizontal.
	ImpactSpeed float64 `json:"impact_speed"`
	ImpactAngle float64 `json:"impact_angle"`
	Samples     int     `json:"samples"`
	Landed      bool    `json:"landed"`
}

func Analyze(tr *ballistics.Trajectory) Stats {
	if tr == nil || tr.Len() == 0 {
		return Stats{}
	}

	apex := tr.Samples[0]
	for _, s := range tr.Samples[1:] {
		if s.Y > apex.Y {
			apex = s
		}
	}

	final := tr.Final()
	st := Stats{
		Range:       tr.Range,
		ApexHeight:  apex.Y,
		ApexX:       apex.X,
		ApexTime:    apex.T,
		FlightTime:  final.T,
		AscentTime:  apex.T,
		DescentTime: final.T - apex.T,
		ImpactSpeed: math.Hypot(final.VX, final.VY),
		Samples:     tr.Len(),
		Landed:      tr.Landed,
	}
	if st.ImpactSpeed > 0 {
		st.ImpactAngle = math.Atan2(-final.VY, math.Abs(final.VX)) * 180 / math.Pi
	}
	return st
}

// Asymmetry is descent time over ascent time. It is 1 for a drag-free flight
// and grows with drag, which slows the fall more than the climb.
func (s Stats) Asymmetry() float64 {
	if s.AscentTime == 0 {
		return 0
	}
	return s.DescentTime / s.AscentTime
}

// Efficiency is the achieved range as a fraction of the drag-free range for
// the same launch.
func Efficiency(tr *ballistics.Trajectory) float64 {
	ideal := tr.Params.IdealRange()
	if ideal <= 0 {
		return 0
	}
	return tr.Range / ideal
}
