package ballistics

import "math"

// Simulate integrates the flight described by p with explicit Euler velocity
// updates and Euler-Cromer position updates at fixed step p.Dt. The returned
// trajectory starts at the origin and, when the projectile lands, ends at
// the ground crossing interpolated between the last two steps.
func Simulate(p Params) *Trajectory {
	maxSteps := p.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	rad := p.Angle * math.Pi / 180
	s := State{VX: p.Speed * math.Cos(rad), VY: p.Speed * math.Sin(rad)}

	tr := &Trajectory{
		Params:  p,
		Samples: make([]Sample, 0, estimateSamples(p, maxSteps)),
	}
	tr.Samples = append(tr.Samples, Sample{X: s.X, Y: s.Y, VX: s.VX, VY: s.VY})

	t := 0.0
	for tr.Steps < maxSteps && s.Airborne() {
		s = Step(p, s)
		t += p.Dt
		tr.Steps++

		next := Sample{T: t, X: s.X, Y: s.Y, VX: s.VX, VY: s.VY}
		if s.Airborne() {
			tr.Samples = append(tr.Samples, next)
			continue
		}

		tr.Samples = append(tr.Samples, groundCrossing(tr.Final(), next))
		tr.Landed = true
	}

	tr.Range = tr.Final().X
	return tr
}

// Step advances s by one time step of p.Dt. Acceleration is evaluated once
// at the start of the step; position uses the updated velocity.
func Step(p Params, s State) State {
	ax, ay := Acceleration(p, s)

	s.VX += ax * p.Dt
	s.VY += ay * p.Dt

	s.X += s.VX * p.Dt
	s.Y += s.VY * p.Dt
	return s
}

// Acceleration returns gravity plus quadratic drag on the air-relative
// velocity. Only the horizontal airspeed is affected by wind.
func Acceleration(p Params, s State) (ax, ay float64) {
	rvx := s.VX - p.Wind
	rvy := s.VY

	k := 0.0
	if vrel := math.Hypot(rvx, rvy); vrel > MinAirspeed {
		k = p.DragConstant() * vrel
	}

	return -k * rvx, -p.Gravity - k*rvy
}

// groundCrossing interpolates linearly between an airborne sample and the
// first below-ground sample to the point where y == 0.
func groundCrossing(above, below Sample) Sample {
	frac := above.Y / (above.Y - below.Y)
	lerp := func(a, b float64) float64 { return a + frac*(b-a) }
	return Sample{
		T:  lerp(above.T, below.T),
		X:  lerp(above.X, below.X),
		Y:  0,
		VX: lerp(above.VX, below.VX),
		VY: lerp(above.VY, below.VY),
	}
}

// maxPrealloc bounds the initial sample buffer; longer flights grow it.
const maxPrealloc = 1 << 16

// estimateSamples sizes the sample buffer from the drag-free flight time,
// clamped in float64 so huge speeds or tiny steps cannot overflow int.
func estimateSamples(p Params, maxSteps int) int {
	limit := maxPrealloc
	if maxSteps < limit {
		limit = maxSteps + 1
	}
	est := 2.0
	if p.Gravity > 0 && p.Dt > 0 {
		vy := p.Speed * math.Sin(p.Angle*math.Pi/180)
		if flight := 2 * vy / p.Gravity; flight > 0 {
			est += flight / p.Dt
		}
	}
	if math.IsNaN(est) || est > float64(limit) {
		return limit
	}
	return int(est)
}
