// Package chain walks a plaintext matrix through an ordered key series and
// back again.
//
// A [Chain] holds the immutable plaintext, the ciphertext computed once at
// construction, the current matrix and the step index in [0, N]. At all times
//
//	current == keys[index-1]·…·keys[0]·plaintext
//
// within floating tolerance. Steps past either end are no-ops.
//
// # Thread Safety
//
// Chain is NOT safe for concurrent use. One session owns it and mutates it
// from a single event loop.
package chain
