package optim

import (
	"context"
	"runtime"

	"github.com/san-kum/projsim/internal/ballistics"
	"golang.org/x/sync/errgroup"
)

type Point struct {
	Angle float64 `json:"angle"`
	Range float64 `json:"range"`
}

type Result struct {
	Angle float64 `json:"angle"`
	Range float64 `json:"range"`
	// Trajectory is the flight at Angle, nil when no candidate produced a
	// positive range.
	Trajectory *ballistics.Trajectory `json:"trajectory,omitempty"`
	// Curve holds the range of every candidate in ascending angle order.
	Curve     []Point `json:"curve"`
	Evaluated int     `json:"evaluated"`
}

// AngleSearch finds the launch angle with the longest range by simulating
// every angle of a grid.
type AngleSearch struct {
	Grid    Grid
	Workers int
}

// NewAngleSearch returns a search over grid. Workers <= 0 uses GOMAXPROCS;
// 1 scans sequentially on the calling goroutine.
func NewAngleSearch(grid Grid, workers int) *AngleSearch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &AngleSearch{Grid: grid, Workers: workers}
}

// Search simulates base at each grid angle and keeps the longest range. The
// scan may run in parallel but the reduction always walks the candidates in
// ascending angle order (see Best), so the lowest angle wins exact ties.
// Only context cancellation makes it fail.
func (a *AngleSearch) Search(ctx context.Context, base ballistics.Params) (*Result, error) {
	angles := a.Grid.Angles()
	ranges := make([]float64, len(angles))

	var err error
	if a.Workers > 1 {
		err = a.scanParallel(ctx, base, angles, ranges)
	} else {
		err = a.scan(ctx, base, angles, ranges)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Curve:     make([]Point, len(angles)),
		Evaluated: len(angles),
	}
	for i, angle := range angles {
		res.Curve[i] = Point{Angle: angle, Range: ranges[i]}
	}

	if best, ok := Best(res.Curve); ok {
		res.Angle = best.Angle
		res.Range = best.Range
		res.Trajectory = ballistics.Simulate(base.WithAngle(best.Angle))
	}
	return res, nil
}

// Best returns the point of curve with the largest positive range, the
// earliest one on ties. ok is false when no point beats zero.
func Best(curve []Point) (best Point, ok bool) {
	for _, pt := range curve {
		if pt.Range > best.Range {
			best = pt
			ok = true
		}
	}
	return best, ok
}

func (a *AngleSearch) scan(ctx context.Context, base ballistics.Params, angles, ranges []float64) error {
	for i, angle := range angles {
		if err := ctx.Err(); err != nil {
			return err
		}
		ranges[i] = ballistics.Simulate(base.WithAngle(angle)).Range
	}
	return nil
}

// scanParallel fills ranges[i] for angles[i]; each goroutine owns its slot.
func (a *AngleSearch) scanParallel(ctx context.Context, base ballistics.Params, angles, ranges []float64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)

	for i, angle := range angles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ranges[i] = ballistics.Simulate(base.WithAngle(angle)).Range
			return nil
		})
	}
	return g.Wait()
}
