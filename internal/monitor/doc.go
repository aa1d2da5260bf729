// Package monitor implements a full-screen dashboard for notary daemons.
//
// It shows the same table as the refresh loop, rendered by the same
// collector and renderer, inside a Bubble Tea program:
//
//   - Model: results, the rendered table, scroll position and view mode
//   - Update: key presses, refresh ticks and finished collections
//   - View: header, table (or error details), footer
//
// # Message Flow
//
//  1. tickMsg fires every refresh interval
//  2. collectCmd collects all coins off the UI goroutine
//  3. resultsMsg arrives and the table is re-rendered into the viewport
//
// A refresh requested while a collection is in flight is ignored.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	e           - Toggle error details for unavailable coins
//	j/k, ↑/↓    - Scroll
//	?           - Toggle help overlay
package monitor
