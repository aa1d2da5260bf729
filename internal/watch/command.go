package watch

import "strings"

// Operator commands.
const (
	KeyRefresh = "r"
	KeyQuit    = "q"
	KeyQuitAlt = "quit"
)

// PollCommand is a parsed line of operator input.
type PollCommand int

const (
	CommandUnrecognized PollCommand = iota
	CommandRefresh
	CommandQuit
)

// String returns a human-readable command name.
func (c PollCommand) String() string {
	switch c {
	case CommandRefresh:
		return "refresh"
	case CommandQuit:
		return "quit"
	default:
		return "unrecognized"
	}
}

// ParseCommand interprets one line of input. Surrounding whitespace is
// ignored.
func ParseCommand(line string) PollCommand {
	s := strings.TrimSpace(line)
	switch {
	case strings.EqualFold(s, KeyRefresh):
		return CommandRefresh
	case strings.EqualFold(s, KeyQuit), strings.EqualFold(s, KeyQuitAlt):
		return CommandQuit
	default:
		return CommandUnrecognized
	}
}
