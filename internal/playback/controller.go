package playback

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval replaces non-positive intervals.
const DefaultInterval = time.Second

// Stepper moves through a chain. *chain.Chain satisfies it.
type Stepper interface {
	StepForward() bool
	StepBackward() (bool, error)
	AtStart() bool
	AtEnd() bool
}

// Frame redraws whatever the stepper currently shows.
type Frame interface {
	Render() error
}

// Controller drives timed playback. It is not safe for concurrent use; every
// method and every scheduled tick must run on the same host loop.
type Controller struct {
	stepper Stepper
	frame   Frame
	sched   Scheduler
	log     *log.Logger

	state  State
	gen    uint64
	closed bool
	err    error
}

func NewController(stepper Stepper, frame Frame, sched Scheduler, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		stepper: stepper,
		frame:   frame,
		sched:   sched,
		log:     logger,
		state:   Stopped{Last: Forward},
	}
}

func (c *Controller) State() State { return c.state }

// Err returns the error that stopped the last playback, if any.
func (c *Controller) Err() error { return c.err }

func (c *Controller) Playing() bool {
	_, ok := c.state.(Playing)
	return ok
}

func (c *Controller) PlayForward(interval time.Duration) { c.play(Forward, interval) }

func (c *Controller) PlayReverse(interval time.Duration) { c.play(Reverse, interval) }

// Resume plays in the direction of the last playback.
func (c *Controller) Resume(interval time.Duration) {
	if s, ok := c.state.(Stopped); ok {
		c.play(s.Last, interval)
	}
}

// Toggle pauses while playing and resumes while stopped.
func (c *Controller) Toggle(interval time.Duration) {
	if c.Playing() {
		c.Pause()
		return
	}
	c.Resume(interval)
}

// Pause stops playback. Pausing while stopped does nothing.
func (c *Controller) Pause() {
	if c.Playing() {
		c.stop()
		c.log.Debug("paused")
	}
}

// Close cancels any active playback and disables the controller. It is safe to
// call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	if c.Playing() {
		c.stop()
	}
	c.closed = true
}

func (c *Controller) play(dir Direction, interval time.Duration) {
	if c.closed {
		return
	}
	if p, ok := c.state.(Playing); ok {
		if p.Dir == dir {
			return
		}
		c.stop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c.err = nil
	c.gen++
	gen := c.gen
	h := c.sched.ScheduleRepeating(func() { c.tick(gen, dir) }, interval)
	c.state = Playing{Dir: dir, handle: h}
	c.log.Debug("playing", "dir", dir, "interval", interval)
}

// stop cancels the active handle and leaves the Playing state. Callers check
// Playing first; this is the only place Cancel is issued.
func (c *Controller) stop() {
	p := c.state.(Playing)
	c.sched.Cancel(p.handle)
	c.gen++
	c.state = Stopped{Last: p.Dir}
}

func (c *Controller) tick(gen uint64, dir Direction) {
	if gen != c.gen || !c.Playing() {
		return
	}
	var err error
	if dir == Forward {
		c.stepper.StepForward()
	} else {
		_, err = c.stepper.StepBackward()
	}
	if err == nil {
		err = c.frame.Render()
	}
	if err != nil {
		c.err = err
		c.stop()
		c.log.Error("playback stopped", "dir", dir, "err", err)
		return
	}
	if (dir == Forward && c.stepper.AtEnd()) || (dir == Reverse && c.stepper.AtStart()) {
		c.stop()
		c.log.Debug("reached boundary", "dir", dir)
	}
}
