package playback_test

import (
	"errors"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rotanim/internal/chain"
	"github.com/san-kum/rotanim/internal/playback"
	"github.com/san-kum/rotanim/internal/playback/playbacktest"
)

type countingFrame struct {
	renders int
	err     error
}

func (f *countingFrame) Render() error {
	f.renders++
	return f.err
}

type failingStepper struct {
	index int
	err   error
}

func (s *failingStepper) StepForward() bool { s.index++; return true }
func (s *failingStepper) StepBackward() (bool, error) {
	return false, s.err
}
func (s *failingStepper) AtStart() bool { return s.index == 0 }
func (s *failingStepper) AtEnd() bool   { return false }

func expectPlaying(ctrl *playback.Controller, dir playback.Direction) {
	GinkgoHelper()
	p, ok := ctrl.State().(playback.Playing)
	Expect(ok).To(BeTrue(), "state is %v", ctrl.State())
	Expect(p.Dir).To(Equal(dir))
	Expect(p.Handle()).NotTo(BeZero())
}

var _ = Describe("Controller", func() {
	var (
		c     *chain.Chain
		frame *countingFrame
		sched *playbacktest.Scheduler
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		var err error
		c, err = chain.NewRandom(4, 3, 3, rand.New(rand.NewSource(7)))
		Expect(err).NotTo(HaveOccurred())
		frame = &countingFrame{}
		sched = playbacktest.New()
		ctrl = playback.NewController(c, frame, sched, nil)
	})

	It("starts stopped, facing forward", func() {
		Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Forward}))
		Expect(ctrl.Playing()).To(BeFalse())
	})

	Describe("PlayForward", func() {
		It("ticks once per key, then stops itself with a single cancel", func() {
			ctrl.PlayForward(10 * time.Millisecond)
			expectPlaying(ctrl, playback.Forward)

			ticks := sched.FireUntilIdle(10)
			Expect(ticks).To(Equal(3))
			Expect(c.Index()).To(Equal(3))
			Expect(frame.renders).To(Equal(3))
			Expect(sched.Scheduled).To(Equal(1))
			Expect(sched.Cancelled).To(Equal(1))
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Forward}))
			Expect(sched.Fire()).To(Equal(0))
		})

		It("is a no-op while already playing forward", func() {
			ctrl.PlayForward(time.Second)
			ctrl.PlayForward(time.Second)
			Expect(sched.Scheduled).To(Equal(1))
			Expect(sched.Cancelled).To(Equal(0))
		})

		It("substitutes the default interval for non-positive values", func() {
			ctrl.PlayForward(0)
			Expect(sched.Interval(sched.Last())).To(Equal(playback.DefaultInterval))
			ctrl.PlayReverse(-time.Second)
			Expect(sched.Interval(sched.Last())).To(Equal(playback.DefaultInterval))
			ctrl.PlayForward(250 * time.Millisecond)
			Expect(sched.Interval(sched.Last())).To(Equal(250 * time.Millisecond))
		})

		It("stops after one tick when already at the end", func() {
			c.GotoEnd()
			ctrl.PlayForward(time.Second)
			Expect(sched.FireUntilIdle(10)).To(Equal(1))
			Expect(c.Index()).To(Equal(3))
			Expect(sched.Cancelled).To(Equal(1))
		})
	})

	Describe("PlayReverse", func() {
		It("walks back to the start and stops", func() {
			c.GotoEnd()
			ctrl.PlayReverse(time.Second)
			Expect(sched.FireUntilIdle(10)).To(Equal(3))
			Expect(c.Index()).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Reverse}))
			Expect(sched.Cancelled).To(Equal(1))
		})
	})

	Describe("timer handle", func() {
		It("lives in the Playing state and follows each new schedule", func() {
			ctrl.PlayForward(time.Second)
			first := ctrl.State().(playback.Playing).Handle()
			Expect(first).To(Equal(sched.Last()))

			ctrl.PlayReverse(time.Second)
			second := ctrl.State().(playback.Playing).Handle()
			Expect(second).To(Equal(sched.Last()))
			Expect(second).NotTo(Equal(first))
			Expect(sched.Active()).To(Equal(1))

			ctrl.Pause()
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Reverse}))
			Expect(sched.Active()).To(Equal(0))
		})
	})

	Describe("switching direction", func() {
		It("cancels the old schedule once and schedules once", func() {
			ctrl.PlayForward(time.Second)
			sched.Fire()
			ctrl.PlayReverse(time.Second)

			Expect(sched.Scheduled).To(Equal(2))
			Expect(sched.Cancelled).To(Equal(1))
			Expect(sched.Active()).To(Equal(1))
			expectPlaying(ctrl, playback.Reverse)

			sched.Fire()
			Expect(c.Index()).To(Equal(0))
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.Cancelled).To(Equal(2))
		})
	})

	Describe("Pause", func() {
		It("cancels exactly once when called twice", func() {
			ctrl.PlayForward(time.Second)
			ctrl.Pause()
			ctrl.Pause()
			Expect(sched.Cancelled).To(Equal(1))
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Forward}))
		})

		It("does nothing while stopped", func() {
			ctrl.Pause()
			Expect(sched.Cancelled).To(Equal(0))
		})

		It("remembers the direction for Resume", func() {
			c.GotoEnd()
			ctrl.PlayReverse(time.Second)
			sched.Fire()
			ctrl.Pause()
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Reverse}))

			ctrl.Resume(time.Second)
			expectPlaying(ctrl, playback.Reverse)
			sched.Fire()
			Expect(c.Index()).To(Equal(1))
		})

		It("toggles between playing and stopped", func() {
			ctrl.Toggle(time.Second)
			Expect(ctrl.Playing()).To(BeTrue())
			ctrl.Toggle(time.Second)
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.Scheduled).To(Equal(1))
			Expect(sched.Cancelled).To(Equal(1))
		})
	})

	Describe("late ticks", func() {
		It("ignores a tick delivered after pause", func() {
			ctrl.PlayForward(time.Second)
			h := sched.Last()
			ctrl.Pause()

			sched.Deliver(h)
			Expect(c.Index()).To(Equal(0))
			Expect(frame.renders).To(Equal(0))
			Expect(sched.Cancelled).To(Equal(1))
		})

		It("ignores a tick from the schedule replaced by a direction switch", func() {
			Expect(c.Seek(2)).To(Succeed())
			ctrl.PlayForward(time.Second)
			old := sched.Last()
			ctrl.PlayReverse(time.Second)

			sched.Deliver(old)
			Expect(c.Index()).To(Equal(2))
			expectPlaying(ctrl, playback.Reverse)
		})
	})

	Describe("Close", func() {
		It("cancels an active schedule once and disables playback", func() {
			ctrl.PlayForward(time.Second)
			ctrl.Close()
			ctrl.Close()
			Expect(sched.Cancelled).To(Equal(1))
			Expect(sched.Active()).To(Equal(0))

			ctrl.PlayForward(time.Second)
			ctrl.Resume(time.Second)
			Expect(sched.Scheduled).To(Equal(1))
		})

		It("does not cancel when nothing is playing", func() {
			ctrl.Close()
			Expect(sched.Cancelled).To(Equal(0))
		})
	})

	Describe("failures", func() {
		It("stops and keeps the render error", func() {
			frame.err = errors.New("sink closed")
			ctrl.PlayForward(time.Second)
			sched.Fire()

			Expect(ctrl.Playing()).To(BeFalse())
			Expect(ctrl.Err()).To(MatchError("sink closed"))
			Expect(sched.Cancelled).To(Equal(1))
		})

		It("stops on a failed backward step without touching the frame", func() {
			stepErr := errors.New("singular key")
			st := &failingStepper{index: 2, err: stepErr}
			ctrl = playback.NewController(st, frame, sched, nil)

			ctrl.PlayReverse(time.Second)
			sched.Fire()
			Expect(errors.Is(ctrl.Err(), stepErr)).To(BeTrue())
			Expect(frame.renders).To(Equal(0))
			Expect(ctrl.State()).To(Equal(playback.Stopped{Last: playback.Reverse}))
			Expect(sched.Cancelled).To(Equal(1))
		})

		It("clears the error on the next play", func() {
			frame.err = errors.New("boom")
			ctrl.PlayForward(time.Second)
			sched.Fire()
			Expect(ctrl.Err()).To(HaveOccurred())

			frame.err = nil
			ctrl.PlayForward(time.Second)
			Expect(ctrl.Err()).NotTo(HaveOccurred())
		})
	})
})
