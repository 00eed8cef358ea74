package render

import (
	"fmt"

	"github.com/san-kum/rotanim/internal/linalg"
)

// Sink receives finished frames. The engine does not know how pixels reach a
// screen or a file.
type Sink interface {
	Draw(pixels []byte, width, height int) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(pixels []byte, width, height int) error

func (f SinkFunc) Draw(pixels []byte, width, height int) error { return f(pixels, width, height) }

// Renderer owns one pixel buffer and rewrites it on every Render.
type Renderer struct {
	registry      *Registry
	gradient      Gradient
	width, height int
	buf           []byte
}

// NewRenderer allocates a rows×cols buffer. An unknown gradient name selects
// the registry default.
func NewRenderer(registry *Registry, rows, cols int, gradient string) *Renderer {
	return &Renderer{
		registry: registry,
		gradient: registry.Resolve(gradient),
		width:    cols,
		height:   rows,
		buf:      make([]byte, rows*cols*4),
	}
}

// Render writes m into the buffer and returns it. The returned slice is the
// renderer's own buffer and is overwritten by the next call.
func (r *Renderer) Render(m *linalg.Matrix) ([]byte, error) {
	if m.Rows() != r.height || m.Cols() != r.width {
		return nil, fmt.Errorf("Render %dx%d into %dx%d buffer: %w", m.Rows(), m.Cols(), r.height, r.width, linalg.ErrDimensionMismatch)
	}
	for i, v := range m.Data() {
		c := r.gradient.At(v)
		j := i * 4
		r.buf[j] = channel(c.R)
		r.buf[j+1] = channel(c.G)
		r.buf[j+2] = channel(c.B)
		r.buf[j+3] = 255
	}
	return r.buf, nil
}

// SetGradient selects a gradient by name and returns the name now active.
// Unknown names fall back to the default without error.
func (r *Renderer) SetGradient(name string) string {
	r.gradient = r.registry.Resolve(name)
	return r.gradient.Name
}

func (r *Renderer) Gradient() string    { return r.gradient.Name }
func (r *Renderer) Registry() *Registry { return r.registry }
func (r *Renderer) Pixels() []byte      { return r.buf }
func (r *Renderer) Width() int          { return r.width }
func (r *Renderer) Height() int         { return r.height }
