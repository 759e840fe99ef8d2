package ballistics

import (
	"math"
	"reflect"
	"testing"
)

func launch(speed, angle float64) Params {
	p := DefaultParams()
	p.Speed = speed
	p.Angle = angle
	return p
}

func TestSimulateDragFreeMatchesIdealRange(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		angle float64
	}{
		{"45deg", 20, 45},
		{"30deg", 20, 30},
		{"60deg", 35, 60},
		{"shallow", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := launch(tt.speed, tt.angle)
			p.DragCoeff = 0

			tr := Simulate(p)
			if !tr.Landed {
				t.Fatal("expected projectile to land")
			}

			ideal := p.IdealRange()
			// Euler-Cromer loses roughly one step of horizontal travel.
			tol := 2 * p.Speed * p.Dt
			if math.Abs(tr.Range-ideal) > tol {
				t.Errorf("expected range ~%.3f, got %.3f", ideal, tr.Range)
			}
		})
	}
}

func TestSimulateZeroAreaIsDragFree(t *testing.T) {
	p := launch(20, 45)
	p.DragCoeff = 0
	noDrag := Simulate(p)

	p = launch(20, 45)
	p.AirDensity = 0
	noAir := Simulate(p)

	if noDrag.Range != noAir.Range {
		t.Errorf("expected identical ranges, got %f and %f", noDrag.Range, noAir.Range)
	}
}

func TestSimulateWithDragFallsShort(t *testing.T) {
	p := launch(20, 45)
	tr := Simulate(p)

	if !tr.Landed {
		t.Fatal("expected projectile to land")
	}
	if tr.Range <= 0 {
		t.Fatalf("expected positive range, got %f", tr.Range)
	}
	ideal := 20 * 20 / 9.81
	if tr.Range >= ideal {
		t.Errorf("expected range below drag-free %.2f, got %.2f", ideal, tr.Range)
	}

	final := tr.Final()
	if final.Y != 0 {
		t.Errorf("expected final sample on the ground, got y=%f", final.Y)
	}
	prev := tr.Samples[tr.Len()-2]
	if prev.Y < 0 {
		t.Errorf("expected last airborne sample above ground, got y=%f", prev.Y)
	}
	if final.T-prev.T > p.Dt+1e-12 {
		t.Errorf("ground crossing %.6fs after last sample, more than one step", final.T-prev.T)
	}
	if tr.Range != final.X {
		t.Errorf("range %f does not match final x %f", tr.Range, final.X)
	}
}

func TestSimulateStartsAtOrigin(t *testing.T) {
	tr := Simulate(launch(15, 30))
	first := tr.Samples[0]
	if first.X != 0 || first.Y != 0 || first.T != 0 {
		t.Errorf("expected first sample at origin, got %+v", first)
	}
	for i := 1; i < tr.Len()-1; i++ {
		if tr.Samples[i].Y < 0 {
			t.Fatalf("sample %d below ground: %+v", i, tr.Samples[i])
		}
	}
}

func TestSimulateZeroSpeed(t *testing.T) {
	tr := Simulate(launch(0, 45))

	if tr.Len() != 2 {
		t.Errorf("expected 2 samples, got %d", tr.Len())
	}
	if tr.Range != 0 {
		t.Errorf("expected zero range, got %f", tr.Range)
	}
	if !tr.Landed {
		t.Error("expected landed")
	}
}

func TestSimulateDeterministic(t *testing.T) {
	p := launch(25, 40)
	p.Wind = -3

	a := Simulate(p)
	b := Simulate(p)

	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical trajectories for identical params")
	}
}

func TestSimulateWind(t *testing.T) {
	calm := Simulate(launch(20, 45))

	tail := launch(20, 45)
	tail.Wind = 5
	head := launch(20, 45)
	head.Wind = -5

	tailRange := Simulate(tail).Range
	headRange := Simulate(head).Range

	if tailRange <= calm.Range {
		t.Errorf("tailwind: expected range above %.3f, got %.3f", calm.Range, tailRange)
	}
	if headRange >= calm.Range {
		t.Errorf("headwind: expected range below %.3f, got %.3f", calm.Range, headRange)
	}
}

func TestSimulateWindIgnoredWithoutDrag(t *testing.T) {
	p := launch(20, 45)
	p.DragCoeff = 0
	calm := Simulate(p)

	p.Wind = 10
	windy := Simulate(p)

	if calm.Range != windy.Range {
		t.Errorf("expected wind to have no effect without drag, got %f vs %f", calm.Range, windy.Range)
	}
}

func TestSimulateStepCeiling(t *testing.T) {
	p := launch(20, 45)
	p.MaxSteps = 10

	tr := Simulate(p)

	if tr.Landed {
		t.Error("expected truncated run to report not landed")
	}
	if tr.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", tr.Steps)
	}
	if tr.Len() != 11 {
		t.Errorf("expected 11 samples, got %d", tr.Len())
	}
	if tr.Range != tr.Final().X {
		t.Errorf("expected best-effort range %f, got %f", tr.Final().X, tr.Range)
	}
}

func TestAccelerationAtRest(t *testing.T) {
	p := DefaultParams()

	ax, ay := Acceleration(p, State{})
	if ax != 0 || ay != -p.Gravity {
		t.Errorf("expected (0, %f), got (%f, %f)", -p.Gravity, ax, ay)
	}

	p.Wind = 4
	ax, _ = Acceleration(p, State{})
	if ax <= 0 {
		t.Errorf("expected wind to push a resting body forward, got ax=%f", ax)
	}
	expected := p.DragConstant() * 4 * 4
	if math.Abs(ax-expected) > 1e-12 {
		t.Errorf("expected ax %f, got %f", expected, ax)
	}
}

func TestAccelerationOpposesMotion(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 0

	ax, ay := Acceleration(p, State{VX: 10, VY: -10})
	if ax >= 0 || ay <= 0 {
		t.Errorf("expected drag opposing velocity, got (%f, %f)", ax, ay)
	}
	if math.Abs(ax+ay) > 1e-12 {
		t.Errorf("expected symmetric components, got (%f, %f)", ax, ay)
	}
}

func TestStepEulerCromer(t *testing.T) {
	p := DefaultParams()
	p.DragCoeff = 0

	s := Step(p, State{VX: 1, VY: 1})

	wantVY := 1 - p.Gravity*p.Dt
	if s.VY != wantVY {
		t.Errorf("expected vy %f, got %f", wantVY, s.VY)
	}
	if s.Y != wantVY*p.Dt {
		t.Errorf("expected position from updated velocity %f, got %f", wantVY*p.Dt, s.Y)
	}
	if s.X != p.Dt {
		t.Errorf("expected x %f, got %f", p.Dt, s.X)
	}
}

func TestSimulateExtremeInputs(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"huge speed", launch(1e18, 45)},
		{"tiny dt", func() Params {
			p := launch(20, 45)
			p.Dt = 1e-300
			p.MaxSteps = 5
			return p
		}()},
		{"huge step limit", func() Params {
			p := launch(20, 45)
			p.MaxSteps = math.MaxInt
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); err != nil {
				t.Fatalf("expected valid params, got %v", err)
			}
			tr := Simulate(tt.p)
			if tr.Len() < 2 {
				t.Errorf("expected at least 2 samples, got %d", tr.Len())
			}
		})
	}
}

func TestEstimateSamplesBounded(t *testing.T) {
	tests := []struct {
		name     string
		p        Params
		maxSteps int
		want     int
	}{
		{"overflowing estimate", launch(1e300, 45), DefaultMaxSteps, maxPrealloc},
		{"clamped by step limit", launch(1e18, 45), 5, 6},
		{"vertical drop", launch(0, 45), DefaultMaxSteps, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateSamples(tt.p, tt.maxSteps); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
