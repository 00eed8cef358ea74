// Package viz is the terminal player.
//
// [Model] is a Bubble Tea program around one session. Frames are drawn as
// half-block cells, two matrix rows per terminal line, colored by the active
// gradient. Playback ticks arrive as [TickMsg] values from [Scheduler], so the
// controller runs inside Update with everything else.
//
// # Key Bindings
//
//	→ / l   - Step forward
//	← / h   - Step backward
//	f / r   - Play forward / reverse
//	Space   - Pause / resume
//	0 / e   - Jump to the plaintext / the ciphertext
//	g       - Cycle gradients
//	t       - Cycle themes
//	?       - Help overlay
//	q       - Quit
package viz
