// Package plant runs closed-loop simulations of a controlled system.
//
// It defines the small set of interfaces a fuzzy controller is tested
// against:
//
//   - [State], [Control]: plain vectors
//   - [System]: dX/dt = f(X, u, t)
//   - [Integrator]: advances a System by one timestep
//   - [Controller]: computes u from the observed state
//   - [Metric]: accumulates a score over a run
//
// [Simulator] wires them together:
//
//	sim := plant.New(models.NewPendulum(), integrators.NewRK4(), stabilizer)
//	result, err := sim.Run(ctx, plant.State{0.5, 0}, plant.DefaultConfig())
//
// Simulator instances are not safe for concurrent use.
package plant
