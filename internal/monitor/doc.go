// Package monitor implements the live bandwidth graph shown by 'bitmeter graph'.
//
// The view follows the Bubble Tea model (Model-Update-View):
//
//   - Model: the sample history, the caption, the terminal size and the
//     preference set that supplies scale and colours
//   - Update: processes ticks, fetched frames, resizes and key presses
//   - View: returns the last rebuilt graph plus the caption and key hints
//
// # Key Components
//
//	Scheduler - pulls the visible window from the sample store each tick
//	History   - the samples currently on screen, replaced on every tick
//	Plan      - maps samples onto vertical segments, one column per second
//	Canvas    - rasterises segments onto braille cells (2x4 pixels each)
//
// # Message Flow
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. fetchCmd queries [now-width, now); a tick arriving while a query is
//     still in flight is dropped
//  3. frameMsg replaces the history and caption and marks the graph dirty
//  4. repaintMsg rebuilds the graph once, however many resizes and frames
//     arrived since the last rebuild
//
// A failed query leaves the previous graph up and marks the caption stale.
//
// # Keyboard Shortcuts
//
//	q, Esc, Ctrl+C  - Quit (the terminal size is staged as the size preference)
//	+ / -           - Double or halve the full-scale rate
//	r               - Fetch now
//	?               - Toggle full help
package monitor
