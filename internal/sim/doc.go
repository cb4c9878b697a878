// Package sim provides the primitives shared by the crop, soil and canopy
// engines.
//
// The package defines:
//
//   - [Trapezoid], [RiseFall] and [Ramp]: piecewise response functions
//   - [ConfigError]: range violations in parameter bundles
//   - [Validator]: accumulates range checks into a single error
//   - [Convergence]: iteration report returned by bounded solvers
//
// Engines never share mutable state. Every parameter bundle is passed by
// value and every engine returns a fresh output slice.
package sim
