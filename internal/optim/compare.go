package optim

import (
	"context"

	"github.com/san-kum/projsim/internal/ballistics"
)

const StandardAngle = 45.0

type Scenario struct {
	Label      string
	Angle      float64
	Trajectory *ballistics.Trajectory
}

func (s Scenario) Range() float64 { return s.Trajectory.Range }

// Compare runs the user's angle, the textbook 45° shot and the optimum found
// by search, in that order.
func Compare(ctx context.Context, search *AngleSearch, base ballistics.Params, userAngle float64) ([]Scenario, *Result, error) {
	res, err := search.Search(ctx, base)
	if err != nil {
		return nil, nil, err
	}

	best := res.Trajectory
	if best == nil {
		best = ballistics.Simulate(base.WithAngle(res.Angle))
	}

	scenarios := []Scenario{
		{Label: "user", Angle: userAngle, Trajectory: ballistics.Simulate(base.WithAngle(userAngle))},
		{Label: "standard", Angle: StandardAngle, Trajectory: ballistics.Simulate(base.WithAngle(StandardAngle))},
		{Label: "optimal", Angle: res.Angle, Trajectory: best},
	}
	return scenarios, res, nil
}
