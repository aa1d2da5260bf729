package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard on the alternate screen and blocks until the
// user quits.
func Run(source Source, interval, timeout time.Duration) error {
	p := tea.NewProgram(NewModel(source, interval, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
