package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Probe succeeded
	SymbolFail    = "✗" // Probe failed
	SymbolPending = "○" // Not yet probed
)
