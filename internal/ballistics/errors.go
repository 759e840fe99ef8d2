package ballistics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every error returned from Params.Validate.
var ErrInvalidParams = errors.New("ballistics: invalid parameters")

// Validate checks the physical invariants Simulate relies on. Simulate itself
// never fails; callers at the input boundary validate first.
func (p Params) Validate() error {
	for name, v := range p.GetParams() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, name)
		}
	}
	switch {
	case p.Mass <= 0:
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParams, p.Mass)
	case p.Area <= 0:
		return fmt.Errorf("%w: area must be positive, got %g", ErrInvalidParams, p.Area)
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidParams, p.Dt)
	case p.DragCoeff < 0:
		return fmt.Errorf("%w: drag coefficient must be non-negative, got %g", ErrInvalidParams, p.DragCoeff)
	case p.AirDensity < 0:
		return fmt.Errorf("%w: air density must be non-negative, got %g", ErrInvalidParams, p.AirDensity)
	case p.MaxSteps <= 0:
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidParams, p.MaxSteps)
	}
	return nil
}
