// Package viz provides the terminal live view for gravsim.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker that starts a live view
//   - [Model]: live view that steps a scene every frame and draws it
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Camera]: rotatable perspective projection
//
// # Key Bindings
//
//	Space    - Pause/Resume simulation
//	+ / -    - Nudge speed (shift+up/down for the fast rate)
//	0        - Reset speed to 1x
//	N        - Spawn a body
//	X/Y/Z    - Rotate view, shifted keys rotate back
//	[ ]      - Zoom out / in
//	T        - Toggle trails
//	C        - Cycle color themes
//	?        - Show help overlay
package viz
