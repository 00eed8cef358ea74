// Package session wires one chain to a renderer, a set of sinks and a
// playback controller, and tears them down together.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/san-kum/rotanim/internal/chain"
	"github.com/san-kum/rotanim/internal/keys"
	"github.com/san-kum/rotanim/internal/linalg"
	"github.com/san-kum/rotanim/internal/playback"
	"github.com/san-kum/rotanim/internal/render"
)

var ErrClosed = errors.New("session: closed")

// Options describe a session. Zero Rows or Cols take the defaults below; Keys
// is used as given, so zero keys is a valid chain. A non-nil Plaintext fixes
// Rows and Cols to its shape. Seed 0 picks a seed from the clock; the one used
// is available from Seed.
type Options struct {
	Rows      int
	Cols      int
	Keys      int
	Seed      int64
	Gradient  string
	Plaintext *linalg.Matrix
	Generator keys.Generator
	Registry  *render.Registry
	Logger    *log.Logger
}

const (
	DefaultRows = 10
	DefaultCols = 10
	DefaultKeys = 5
)

// DefaultOptions is a 10×10 plaintext under five keys.
func DefaultOptions() Options {
	return Options{Rows: DefaultRows, Cols: DefaultCols, Keys: DefaultKeys}
}

type Session struct {
	ID uuid.UUID

	seed     int64
	chain    *chain.Chain
	renderer *render.Renderer
	sinks    []render.Sink
	ctrl     *playback.Controller
	log      *log.Logger
	closed   bool
}

func New(opts Options, sched playback.Scheduler) (*Session, error) {
	if opts.Rows == 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = DefaultCols
	}
	if opts.Registry == nil {
		opts.Registry = render.DefaultRegistry()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	src := rand.New(rand.NewSource(seed))
	var (
		c   *chain.Chain
		err error
	)
	switch {
	case opts.Plaintext != nil && opts.Generator != nil:
		c, err = chain.NewFromGenerator(opts.Plaintext, opts.Keys, opts.Generator)
	case opts.Plaintext != nil:
		c, err = chain.NewWithPlaintext(opts.Plaintext, opts.Keys, src)
	default:
		c, err = chain.NewRandom(opts.Rows, opts.Cols, opts.Keys, src)
	}
	if err != nil {
		return nil, fmt.Errorf("building chain: %w", err)
	}

	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", id.String())

	s := &Session{
		ID:    id,
		seed:  seed,
		chain: c,
		log:   logger,
	}
	s.renderer = render.NewRenderer(opts.Registry, c.Rows(), c.Cols(), opts.Gradient)
	if opts.Gradient != "" && s.renderer.Gradient() != opts.Gradient {
		logger.Debug("unknown gradient, using default", "requested", opts.Gradient, "gradient", s.renderer.Gradient())
	}
	s.ctrl = playback.NewController(c, s, sched, logger)
	logger.Info("session ready", "rows", c.Rows(), "cols", c.Cols(), "keys", c.Len(), "seed", seed)
	return s, nil
}

// AddSink registers a sink for every later Render.
func (s *Session) AddSink(sink render.Sink) { s.sinks = append(s.sinks, sink) }

// Render draws the current matrix into every sink.
func (s *Session) Render() error {
	if s.closed {
		return ErrClosed
	}
	px, err := s.renderer.Render(s.chain.CurrentView())
	if err != nil {
		return err
	}
	for _, sink := range s.sinks {
		if err := sink.Draw(px, s.renderer.Width(), s.renderer.Height()); err != nil {
			return fmt.Errorf("drawing frame %d: %w", s.chain.Index(), err)
		}
	}
	return nil
}

// StepForward takes one manual step and redraws.
func (s *Session) StepForward() error {
	if s.closed {
		return ErrClosed
	}
	if s.chain.StepForward() {
		s.log.Debug("step", "dir", playback.Forward, "index", s.chain.Index())
	}
	return s.Render()
}

// StepBackward takes one manual step back and redraws. A failed inversion is
// returned and the frame is left as it was.
func (s *Session) StepBackward() error {
	if s.closed {
		return ErrClosed
	}
	moved, err := s.chain.StepBackward()
	if err != nil {
		s.log.Error("step back failed", "index", s.chain.Index(), "err", err)
		return err
	}
	if moved {
		s.log.Debug("step", "dir", playback.Reverse, "index", s.chain.Index())
	}
	return s.Render()
}

// Reset, GotoEnd and Seek move the chain and redraw. Like the steps, they
// return ErrClosed without moving once the session is closed.
func (s *Session) Reset() error {
	if s.closed {
		return ErrClosed
	}
	s.chain.Reset()
	return s.Render()
}

func (s *Session) GotoEnd() error {
	if s.closed {
		return ErrClosed
	}
	s.chain.GotoEnd()
	return s.Render()
}

func (s *Session) Seek(k int) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.chain.Seek(k); err != nil {
		return err
	}
	return s.Render()
}

// SetGradient switches the gradient, redraws, and returns the active name.
func (s *Session) SetGradient(name string) (string, error) {
	if s.closed {
		return s.renderer.Gradient(), ErrClosed
	}
	active := s.renderer.SetGradient(name)
	if active != name {
		s.log.Debug("unknown gradient, using default", "requested", name, "gradient", active)
	}
	return active, s.Render()
}

// NextGradient cycles to the next registered gradient.
func (s *Session) NextGradient() (string, error) {
	return s.SetGradient(s.renderer.Registry().Next(s.renderer.Gradient()))
}

func (s *Session) Seed() int64                      { return s.seed }
func (s *Session) Chain() *chain.Chain              { return s.chain }
func (s *Session) Renderer() *render.Renderer       { return s.renderer }
func (s *Session) Controller() *playback.Controller { return s.ctrl }
func (s *Session) Logger() *log.Logger              { return s.log }

// Close stops playback, so no tick fires against a closed session.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.ctrl.Close()
	s.closed = true
	s.log.Debug("session closed", "index", s.chain.Index())
}
