// Package linalg provides the dense matrix type shared by the animation engine.
// It wraps gonum's mat.Dense with the shape checks and sentinel errors the
// rest of the engine matches on.
//
//   - [Matrix]: row-major float64 matrix with fixed shape
//   - [Mul]: matrix product
//   - [Inverse]: general inversion by LU factorization
//   - [EqualApprox]: tolerance comparison used by round-trip checks
//
// # Layout
//
// Cell (r, c) lives at Data()[r*Cols()+c]. Every Matrix owns a dense with
// stride equal to its column count, so the ordering never changes.
package linalg
