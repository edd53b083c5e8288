// Package dynamo provides the ODE primitives used to integrate paths
// through steady vector fields.
//
//   - [State]: vector representing a point on a path
//   - [System]: interface for autonomous or time-dependent fields (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: integrator that also proposes the next step size
//   - [ForEach]: bounded fan-out over independent work items
//
// # Example
//
//	field := flow.StreamlineField(tunnel, 20, false, nil)
//	integ := integrators.NewRK4()
//	x := dynamo.State{-10, 0, 5}
//	x = integ.Step(field, x, 0, 0.1)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Give each goroutine its own instance; systems must be read-only.
package dynamo
