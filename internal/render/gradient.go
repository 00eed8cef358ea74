package render

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gogpu/gg"
)

// DefaultGradient is the fallback used by DefaultRegistry.
const DefaultGradient = "gray"

var (
	ErrDuplicateGradient = errors.New("render: duplicate gradient name")
	ErrMissingDefault    = errors.New("render: default gradient not registered")
)

// Gradient maps a scalar to a color. Inputs outside [0, 1] clamp to the ends.
type Gradient struct {
	Name string
	eval func(t float64) gg.RGBA
}

// NewGradient returns a gradient through evenly spaced hex color stops,
// interpolated by a gg linear gradient brush laid along the x axis.
func NewGradient(name string, hexStops ...string) Gradient {
	brush := gg.NewLinearGradientBrush(0, 0, 1, 0)
	for i, h := range hexStops {
		offset := 0.0
		if len(hexStops) > 1 {
			offset = float64(i) / float64(len(hexStops)-1)
		}
		brush.AddColorStop(offset, gg.Hex(h))
	}
	brush.SetExtend(gg.ExtendPad)
	return Gradient{Name: name, eval: func(t float64) gg.RGBA {
		return brush.ColorAt(t, 0)
	}}
}

// NewFuncGradient wraps an arbitrary evaluation function.
func NewFuncGradient(name string, eval func(t float64) gg.RGBA) Gradient {
	return Gradient{Name: name, eval: eval}
}

// At evaluates the gradient at t.
func (g Gradient) At(t float64) gg.RGBA {
	return g.eval(clamp01(t))
}

// Gray writes floor(t*255) to every channel.
func Gray() Gradient {
	return NewFuncGradient(DefaultGradient, func(t float64) gg.RGBA {
		v := math.Floor(t*255) / 255
		return gg.RGB(v, v, v)
	})
}

// Registry is an immutable name→gradient table with a fallback.
type Registry struct {
	def    string
	byName map[string]Gradient
	names  []string
}

func NewRegistry(defaultName string, gradients ...Gradient) (*Registry, error) {
	r := &Registry{def: defaultName, byName: make(map[string]Gradient, len(gradients))}
	for _, g := range gradients {
		if _, dup := r.byName[g.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGradient, g.Name)
		}
		r.byName[g.Name] = g
		r.names = append(r.names, g.Name)
	}
	if _, ok := r.byName[defaultName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDefault, defaultName)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup reports whether name is registered.
func (r *Registry) Lookup(name string) (Gradient, bool) {
	g, ok := r.byName[name]
	return g, ok
}

// Resolve returns the named gradient, or the default when name is unknown.
func (r *Registry) Resolve(name string) Gradient {
	if g, ok := r.byName[name]; ok {
		return g
	}
	return r.byName[r.def]
}

func (r *Registry) Default() Gradient { return r.byName[r.def] }

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Next returns the name after current in sorted order, wrapping around.
func (r *Registry) Next(current string) string {
	for i, n := range r.names {
		if n == current {
			return r.names[(i+1)%len(r.names)]
		}
	}
	return r.def
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(DefaultGradient,
		Gray(),
		NewGradient("viridis", "#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"),
		NewGradient("magma", "#000004", "#1c1040", "#4f127b", "#812581", "#b5367a", "#e55064", "#fb8761", "#fec287", "#fcfdbf"),
		NewGradient("inferno", "#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655", "#e35933", "#f98e09", "#f9cb35", "#fcffa4"),
		NewGradient("plasma", "#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"),
		NewGradient("coolwarm", "#3b4cc0", "#dddddd", "#b40426"),
		NewGradient("heat", "#000000", "#ff0000", "#ffff00", "#ffffff"),
	)
	if err != nil {
		panic(err)
	}
	return r
})

// DefaultRegistry returns the built-in catalog. The same instance is shared by
// every caller.
func DefaultRegistry() *Registry { return defaultRegistry() }

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// channel quantizes a [0, 1] color component to a byte.
func channel(x float64) byte {
	return byte(math.Round(clamp01(x) * 255))
}
