// Package ui maps metric severities to terminal colors.
//
// Business code never writes escape sequences. It tags values with a
// Severity and the Painter decorates already-padded text at render time,
// so colors never count toward column widths.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	SeverityNormal      (bright green) - healthy values
//	SeverityWarning     (yellow)       - needs attention soon
//	SeverityCritical    (red)          - needs attention now
//	SeverityUnavailable (light red)    - whole-row alert when a daemon is down
//	SeverityNone                       - printed as-is
//
// A Painter in "never" mode, or in "auto" mode on a non-terminal writer,
// returns text unchanged.
package ui
