package chain

import (
	"fmt"

	"github.com/san-kum/rotanim/internal/keys"
	"github.com/san-kum/rotanim/internal/linalg"
	"github.com/san-kum/rotanim/internal/plaintext"
)

// Observer is notified after every change of the current matrix.
type Observer interface {
	OnStep(index int, current *linalg.Matrix)
}

// Source provides the randomness for NewRandom and NewWithPlaintext.
type Source interface {
	keys.Source
}

type Chain struct {
	keys       keys.Series
	plaintext  *linalg.Matrix
	ciphertext *linalg.Matrix
	current    *linalg.Matrix
	index      int
	observers  []Observer
}

// New builds a chain over an explicit plaintext and key series. The
// plaintext is copied; the ciphertext is computed eagerly.
func New(pt *linalg.Matrix, series keys.Series) (*Chain, error) {
	if series.Len() > 0 && series.Dim() != pt.Rows() {
		return nil, fmt.Errorf("%w: keys are %dx%d, plaintext has %d rows: %w",
			ErrShapeMismatch, series.Dim(), series.Dim(), pt.Rows(), linalg.ErrDimensionMismatch)
	}
	composed, err := series.Compose(pt.Rows())
	if err != nil {
		return nil, err
	}
	ct, err := linalg.Mul(composed, pt)
	if err != nil {
		return nil, err
	}
	snapshot := pt.Clone()
	return &Chain{
		keys:       series,
		plaintext:  snapshot,
		ciphertext: ct,
		current:    snapshot.Clone(),
		observers:  make([]Observer, 0),
	}, nil
}

// NewRandom draws a rows×rows key series and a rows×cols plaintext from src.
// Keys are drawn first.
func NewRandom(rows, cols, keyCount int, src Source) (*Chain, error) {
	series, err := keys.Generate(rows, keyCount, src)
	if err != nil {
		return nil, err
	}
	pt, err := plaintext.Random(rows, cols, src)
	if err != nil {
		return nil, err
	}
	return New(pt, series)
}

// NewWithPlaintext draws a key series sized to the plaintext's rows.
func NewWithPlaintext(pt *linalg.Matrix, keyCount int, src Source) (*Chain, error) {
	series, err := keys.Generate(pt.Rows(), keyCount, src)
	if err != nil {
		return nil, err
	}
	return New(pt, series)
}

// NewFromGenerator asks gen for a series sized to the plaintext's rows.
func NewFromGenerator(pt *linalg.Matrix, keyCount int, gen keys.Generator) (*Chain, error) {
	series, err := gen.Generate(pt.Rows(), keyCount)
	if err != nil {
		return nil, err
	}
	return New(pt, series)
}

func (c *Chain) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Chain) notify() {
	for _, o := range c.observers {
		o.OnStep(c.index, c.current)
	}
}

// StepForward applies keys[index] and advances. It reports whether anything
// changed; at index N it does nothing.
func (c *Chain) StepForward() bool {
	if c.index >= c.keys.Len() {
		return false
	}
	next, err := c.keys.At(c.index).Apply(c.current)
	if err != nil {
		// Shapes are fixed at construction, so Apply cannot fail here.
		panic(err)
	}
	c.current = next
	c.index++
	c.notify()
	return true
}

// StepBackward undoes the most recent step by inverting its key. At index 0 it
// does nothing. A failed inversion leaves the chain untouched.
func (c *Chain) StepBackward() (bool, error) {
	if c.index <= 0 {
		return false, nil
	}
	step := c.index - 1
	inv, err := c.keys.At(step).Inverse()
	if err != nil {
		return false, &InversionError{Step: step, Wrapped: err}
	}
	prev, err := linalg.Mul(inv, c.current)
	if err != nil {
		return false, err
	}
	if !prev.IsValid() {
		return false, &InversionError{Step: step, Wrapped: fmt.Errorf("non-finite result")}
	}
	c.current = prev
	c.index = step
	c.notify()
	return true, nil
}

// Reset returns to the plaintext.
func (c *Chain) Reset() {
	c.current = c.plaintext.Clone()
	c.index = 0
	c.notify()
}

// GotoEnd jumps to the precomputed ciphertext.
func (c *Chain) GotoEnd() {
	c.current = c.ciphertext.Clone()
	c.index = c.keys.Len()
	c.notify()
}

// Seek moves to index k. The ends use Reset and GotoEnd; anything in between
// is reached by single steps from the current index.
func (c *Chain) Seek(k int) error {
	switch {
	case k < 0 || k > c.keys.Len():
		return fmt.Errorf("Seek(%d) with %d keys: %w", k, c.keys.Len(), ErrIndexOutOfRange)
	case k == 0:
		c.Reset()
	case k == c.keys.Len():
		c.GotoEnd()
	}
	for c.index < k {
		c.StepForward()
	}
	for c.index > k {
		if _, err := c.StepBackward(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chain) Index() int    { return c.index }
func (c *Chain) Len() int      { return c.keys.Len() }
func (c *Chain) Rows() int     { return c.plaintext.Rows() }
func (c *Chain) Cols() int     { return c.plaintext.Cols() }
func (c *Chain) AtStart() bool { return c.index == 0 }
func (c *Chain) AtEnd() bool   { return c.index == c.keys.Len() }

func (c *Chain) Keys() keys.Series { return c.keys }

// Current returns a copy of the current matrix.
func (c *Chain) Current() *linalg.Matrix { return c.current.Clone() }

// CurrentView returns the current matrix without copying. It is replaced, not
// mutated, by later steps, so holding it is safe; writing to it is not.
func (c *Chain) CurrentView() *linalg.Matrix { return c.current }

func (c *Chain) Plaintext() *linalg.Matrix  { return c.plaintext.Clone() }
func (c *Chain) Ciphertext() *linalg.Matrix { return c.ciphertext.Clone() }
