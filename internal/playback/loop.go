package playback

import (
	"context"
	"sync"
	"time"
)

type job struct {
	h  Handle
	fn func()
}

type loopTimer struct {
	ticker *time.Ticker
	done   chan struct{}
}

// Loop is a real-time Scheduler. Ticker goroutines only enqueue; Run executes
// the queued callbacks one at a time on the caller's goroutine.
type Loop struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*loopTimer
	queue  chan job
	wake   chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		timers: make(map[Handle]*loopTimer),
		queue:  make(chan job),
		wake:   make(chan struct{}, 1),
	}
}

func (l *Loop) ScheduleRepeating(cb func(), interval time.Duration) Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	l.mu.Lock()
	l.next++
	h := l.next
	t := &loopTimer{ticker: time.NewTicker(interval), done: make(chan struct{})}
	l.timers[h] = t
	l.mu.Unlock()

	go func() {
		defer t.ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				select {
				case l.queue <- job{h: h, fn: cb}:
				case <-t.done:
					return
				}
			}
		}
	}()
	return h
}

// Cancel stops the timer behind h. Unknown or already cancelled handles are
// ignored.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	t, ok := l.timers[h]
	delete(l.timers, h)
	l.mu.Unlock()
	if ok {
		close(t.done)
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
}

// Post runs fn on the loop goroutine during Run.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.queue <- job{fn: fn}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports how many schedules are live.
func (l *Loop) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Run executes callbacks until ctx is done or no schedule remains. A callback
// whose handle was cancelled after it was queued is dropped.
func (l *Loop) Run(ctx context.Context) error {
	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case j := <-l.queue:
			if j.h != 0 && !l.live(j.h) {
				continue
			}
			j.fn()
		}
	}
	return nil
}

// Close cancels every schedule.
func (l *Loop) Close() {
	l.mu.Lock()
	hs := make([]Handle, 0, len(l.timers))
	for h := range l.timers {
		hs = append(hs, h)
	}
	l.mu.Unlock()
	for _, h := range hs {
		l.Cancel(h)
	}
}

func (l *Loop) live(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[h]
	return ok
}
