package ui

// Severity classifies a single metric value. It only drives color.
type Severity int

const (
	// SeverityNone is a value with no classification, printed uncolored.
	SeverityNone Severity = iota
	SeverityNormal
	SeverityWarning
	SeverityCritical
	// SeverityUnavailable marks values that could not be collected.
	SeverityUnavailable
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	case SeverityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Worse returns the more severe of two severities. Unavailable outranks
// everything.
func Worse(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}
