// Package render turns a matrix into an RGBA pixel buffer.
//
// # Orientation
//
// The buffer is row-major over the matrix as stored: width is the column
// count, height is the row count, and cell (r, c) is written at byte offset
// (r*cols + c)*4. Every consumer of [Renderer.Pixels] assumes this layout.
// There is no transposed variant.
//
// # Gradients
//
// A [Registry] is an immutable set of named gradients built once and shared by
// pointer. Asking for an unknown name yields the registry default, "gray" for
// [DefaultRegistry].
package render
