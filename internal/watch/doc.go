// Package watch implements the interactive refresh loop.
//
// The loop renders the dashboard, then waits up to the refresh interval for
// a line of operator input:
//
//	r, R       refresh now
//	q, quit    exit (case-insensitive)
//	anything   refresh, with a warning
//	timeout    refresh
//
// The loop is iterative, so long sessions do not grow the stack.
package watch
