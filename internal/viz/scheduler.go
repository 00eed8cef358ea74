package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rotanim/internal/playback"
)

type TickMsg struct {
	Handle playback.Handle
}

type teaTimer struct {
	cb       func()
	interval time.Duration
}

// Scheduler delivers playback ticks as bubbletea messages, so callbacks run
// inside Update like every other event. New schedules are collected and
// handed to the runtime by Drain.
type Scheduler struct {
	next    playback.Handle
	active  map[playback.Handle]teaTimer
	pending []tea.Cmd
}

func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[playback.Handle]teaTimer)}
}

func (s *Scheduler) ScheduleRepeating(cb func(), interval time.Duration) playback.Handle {
	s.next++
	h := s.next
	s.active[h] = teaTimer{cb: cb, interval: interval}
	s.pending = append(s.pending, tick(h, interval))
	return h
}

func (s *Scheduler) Cancel(h playback.Handle) { delete(s.active, h) }

// Drain returns the commands for schedules created since the last call.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Handle runs the callback behind msg and re-arms it while it stays active.
// Ticks of cancelled handles are dropped.
func (s *Scheduler) Handle(msg TickMsg) tea.Cmd {
	t, ok := s.active[msg.Handle]
	if !ok {
		return nil
	}
	t.cb()
	if _, ok := s.active[msg.Handle]; !ok {
		return nil
	}
	return tick(msg.Handle, t.interval)
}

func (s *Scheduler) Active() int { return len(s.active) }

func tick(h playback.Handle, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return TickMsg{Handle: h} })
}
