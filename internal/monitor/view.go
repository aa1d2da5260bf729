package monitor

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/ui"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.viewportReady:
		b.WriteString(m.viewport.View())
	case m.viewMode == ViewErrors:
		b.WriteString(m.renderErrors())
	default:
		b.WriteString(m.rendered)
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title line with summary stats.
func (m Model) renderHeader() string {
	total := len(m.results)
	online := m.OnlineCount()

	var updateText string
	switch {
	case m.lastUpdate.IsZero():
		updateText = "waiting for first update"
	case m.SecondsSinceUpdate() <= 0:
		updateText = "last update just now"
	default:
		updateText = fmt.Sprintf("last update %ds ago", m.SecondsSinceUpdate())
	}

	title := TitleStyle.Render("ntxmon")
	onlineText := OnlineStyle.Render(fmt.Sprintf("%d online", online))
	if online < total {
		onlineText += LabelStyle.Render(" | ") + OfflineStyle.Render(fmt.Sprintf("%d down", total-online))
	}
	summary := LabelStyle.Render(fmt.Sprintf(" | %d coins | ", total)) + onlineText + LabelStyle.Render(" | "+updateText)

	line := title + summary
	if m.collecting {
		line += " " + m.spinner.View()
	}
	return HeaderStyle.Render(line)
}

// renderErrors lists why each unavailable coin failed.
func (m Model) renderErrors() string {
	var lines []string
	for _, r := range m.results {
		if r.OK() {
			continue
		}
		lines = append(lines, fmt.Sprintf(" %s %s  %s",
			ErrorSymbolStyle.Render(ui.SymbolFail),
			r.Entity.Label(),
			LabelStyle.Render(shortError(r.Err))))
	}
	if len(lines) == 0 {
		return " " + OnlineStyle.Render(ui.SymbolSuccess) + " All daemons responding"
	}
	return strings.Join(lines, "\n")
}

// shortError keeps structured errors on one line.
func shortError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Short()
	}
	return err.Error()
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	hints := make([]string, 0, 4)
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	lines := []string{helpTitleStyle.Render("Keyboard Shortcuts"), ""}
	for _, b := range keys.FullHelp() {
		lines = append(lines, helpRow(b))
	}
	lines = append(lines, "", LabelStyle.Render("Press ? to close"))

	box := helpBoxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func helpRow(b key.Binding) string {
	h := b.Help()
	return helpKeyStyle.Render(h.Key) + helpDescStyle.Render(h.Desc)
}
