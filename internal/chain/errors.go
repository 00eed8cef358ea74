package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates a key series whose dimension differs from
	// the plaintext row count.
	ErrShapeMismatch = errors.New("chain: key dimension does not match plaintext rows")

	// ErrNumericalInversion indicates a key could not be inverted while
	// stepping backward. Keys from keys.Generate never trigger it.
	ErrNumericalInversion = errors.New("chain: key inversion failed")

	// ErrIndexOutOfRange indicates a seek target outside [0, N].
	ErrIndexOutOfRange = errors.New("chain: index out of range")
)

// InversionError reports which key failed to invert.
type InversionError struct {
	Step    int
	Wrapped error
}

func (e *InversionError) Error() string {
	return fmt.Sprintf("%v at key %d: %v", ErrNumericalInversion, e.Step, e.Wrapped)
}

func (e *InversionError) Unwrap() []error {
	return []error{ErrNumericalInversion, e.Wrapped}
}
