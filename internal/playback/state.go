package playback

// Direction is the way playback walks the chain.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// State is either Stopped or Playing.
type State interface {
	isState()
	String() string
}

// Stopped remembers the direction of the last playback so Resume can pick it
// up again.
type Stopped struct {
	Last Direction
}

// Playing carries the active direction and the scheduler handle driving it.
// A handle exists only inside this variant.
type Playing struct {
	Dir    Direction
	handle Handle
}

// Handle is the schedule the controller cancels when leaving this state.
func (p Playing) Handle() Handle { return p.handle }

func (Stopped) isState() {}
func (Playing) isState() {}

func (s Stopped) String() string { return "stopped" }

func (p Playing) String() string {
	if p.Dir == Reverse {
		return "playing reverse"
	}
	return "playing forward"
}
