package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewErrors
)

// String returns a human-readable view name.
func (v ViewMode) String() string {
	if v == ViewErrors {
		return "errors"
	}
	return "table"
}

// keyMap holds the dashboard key bindings.
type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Errors  key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Close   key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "refresh"),
	),
	Errors: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "errors"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Errors, k.Help}
}

// FullHelp returns the bindings shown in the help overlay.
func (k keyMap) FullHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Errors, k.Up, k.Down, k.Help, k.Close}
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if key.Matches(msg, keys.Close) {
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.viewMode == ViewErrors:
			m.setViewMode(ViewTable)
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		return true, m.startCollect()

	case key.Matches(msg, keys.Errors):
		if m.viewMode == ViewErrors {
			m.setViewMode(ViewTable)
		} else {
			m.setViewMode(ViewErrors)
		}
		return true, nil
	}

	return false, nil
}
