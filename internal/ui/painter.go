package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode string from config or flags.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Painter decorates text according to severity for one output stream.
type Painter struct {
	styles  map[Severity]lipgloss.Style
	alert   lipgloss.Style
	enabled bool
}

// NewPainter creates a painter for w. In auto mode color is only used when w
// is a terminal.
func NewPainter(w io.Writer, mode ColorMode) *Painter {
	r := lipgloss.NewRenderer(w)

	enabled := true
	switch mode {
	case ColorNever:
		enabled = false
	case ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI)
		}
	default:
		enabled = isTerminal(w)
	}
	if !enabled {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Painter{
		enabled: enabled,
		styles: map[Severity]lipgloss.Style{
			SeverityNormal:      r.NewStyle().Foreground(ColorHealthy),
			SeverityWarning:     r.NewStyle().Foreground(ColorWarning),
			SeverityCritical:    r.NewStyle().Foreground(ColorCritical),
			SeverityUnavailable: r.NewStyle().Foreground(ColorAlert),
		},
		alert: r.NewStyle().Foreground(ColorAlert),
	}
}

// Plain returns a painter that never colors.
func Plain() *Painter {
	return NewPainter(io.Discard, ColorNever)
}

// Enabled reports whether the painter emits color.
func (p *Painter) Enabled() bool {
	return p.enabled
}

// Paint wraps text in the color for s. SeverityNone is returned unchanged.
func (p *Painter) Paint(text string, s Severity) string {
	if !p.enabled {
		return text
	}
	style, ok := p.styles[s]
	if !ok {
		return text
	}
	return style.Render(text)
}

// Alert colors a whole line as an alert.
func (p *Painter) Alert(line string) string {
	if !p.enabled {
		return line
	}
	return p.alert.Render(line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
