// Package aero provides the closed-form drag and power estimates used by
// the wind tunnel.
//
//   - [Drag]: F = 0.5 * rho * v^2 * A * Cd
//   - [Power]: P = F * v
//   - [FrontalArea]: cross-section facing +x, from bounding-box extents
//   - [Sweep]: re-evaluates both formulas over an evenly spaced velocity range
//
// The functions are total over finite inputs and carry no state.
package aero
