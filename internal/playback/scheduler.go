package playback

import "time"

// Handle identifies one repeating schedule.
type Handle uint64

// Scheduler runs a callback repeatedly until the handle is cancelled.
// Callbacks must be delivered on the host loop, one at a time.
type Scheduler interface {
	ScheduleRepeating(cb func(), interval time.Duration) Handle
	Cancel(h Handle)
}
