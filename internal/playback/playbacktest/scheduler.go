// Package playbacktest provides a manual Scheduler for playback tests.
package playbacktest

import (
	"time"

	"github.com/san-kum/rotanim/internal/playback"
)

type entry struct {
	cb       func()
	interval time.Duration
}

// Scheduler fires callbacks only when told to. The zero value is not usable;
// call New.
type Scheduler struct {
	// Scheduled and Cancelled count every call, including cancels of handles
	// that were already gone.
	Scheduled int
	Cancelled int

	next   playback.Handle
	order  []playback.Handle
	active map[playback.Handle]bool
	all    map[playback.Handle]entry
}

func New() *Scheduler {
	return &Scheduler{
		active: make(map[playback.Handle]bool),
		all:    make(map[playback.Handle]entry),
	}
}

func (s *Scheduler) ScheduleRepeating(cb func(), interval time.Duration) playback.Handle {
	s.next++
	s.Scheduled++
	s.order = append(s.order, s.next)
	s.active[s.next] = true
	s.all[s.next] = entry{cb: cb, interval: interval}
	return s.next
}

func (s *Scheduler) Cancel(h playback.Handle) {
	s.Cancelled++
	delete(s.active, h)
}

// Fire runs every active callback once, in scheduling order, and returns how
// many ran. A callback cancelled by an earlier one in the same round is
// skipped.
func (s *Scheduler) Fire() int {
	snapshot := make([]playback.Handle, 0, len(s.active))
	for _, h := range s.order {
		if s.active[h] {
			snapshot = append(snapshot, h)
		}
	}
	n := 0
	for _, h := range snapshot {
		if !s.active[h] {
			continue
		}
		s.all[h].cb()
		n++
	}
	return n
}

// FireUntilIdle fires until nothing is active or max rounds pass, and returns
// the total number of callbacks run.
func (s *Scheduler) FireUntilIdle(max int) int {
	total := 0
	for i := 0; i < max && s.Active() > 0; i++ {
		total += s.Fire()
	}
	return total
}

func (s *Scheduler) Active() int { return len(s.active) }

// Interval returns the interval h was scheduled with.
func (s *Scheduler) Interval(h playback.Handle) time.Duration { return s.all[h].interval }

// Last returns the most recent handle, or zero.
func (s *Scheduler) Last() playback.Handle { return s.next }

// Deliver runs h's callback even if h was cancelled, the way a real timer can
// deliver one tick late.
func (s *Scheduler) Deliver(h playback.Handle) {
	if e, ok := s.all[h]; ok {
		e.cb()
	}
}
