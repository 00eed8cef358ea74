package export

import "errors"

var (
	ErrFrameSize = errors.New("export: pixel buffer does not match frame size")
	ErrNoFrames  = errors.New("export: no frames recorded")
)
