// Package viz renders simulation results in the terminal.
//
// Static output is built from asciigraph line charts and lipgloss panels:
//
//   - [Chart] and [ChartMany]: captioned line charts of daily or monthly series
//   - [Summary]: a metric panel for one run
//   - [Canvas]: Braille pixel canvas used by the live view
//
// [Live] is a Bubble Tea program that replays a finished run day by day.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from day one
//	T     - Cycle color themes
//	+/-   - Playback speed
//	[]    - Step back/forward one day while paused
//	?     - Show help overlay
package viz
