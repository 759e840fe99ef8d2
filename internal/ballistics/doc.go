// Package ballistics integrates the 2-D flight of a projectile under gravity,
// quadratic aerodynamic drag and a constant horizontal wind.
//
// The package is the numerical core of projsim:
//
//   - [Params]: launch conditions, object properties and physical constants
//   - [State]: position and velocity at one instant
//   - [Trajectory]: the sampled flight path and its range
//   - [Simulate]: fixed-step Euler-Cromer integration until ground contact
//
// # Example
//
//	p := ballistics.DefaultParams()
//	p.Speed = 20
//	p.Angle = 45
//	tr := ballistics.Simulate(p)
//	fmt.Printf("range %.2f m after %d steps\n", tr.Range, tr.Steps)
//
// # Termination
//
// A run ends when the projectile crosses y=0, in which case the final sample
// is the interpolated ground contact point, or when [Params.MaxSteps] steps
// have been taken, in which case [Trajectory.Landed] is false and the path
// is returned as far as it got.
//
// Simulate has no shared state. Calls with the same Params produce identical
// trajectories and may run concurrently.
package ballistics
