package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ntxmon/internal/stats"
)

// Source collects and formats dashboard results. *watch.Board satisfies it.
type Source interface {
	Collect(ctx context.Context) []stats.Result
	Format(results []stats.Result) string
}

// Reserved rows around the viewport.
const (
	headerHeight = 2
	footerHeight = 2
)

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// resultsMsg carries a finished collection cycle.
type resultsMsg struct {
	results []stats.Result
	time    time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	source   Source
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	results    []stats.Result
	rendered   string
	lastUpdate time.Time
	collecting bool
	cycles     int

	spinner       spinner.Model
	viewport      viewport.Model
	viewportReady bool
	width         int
	height        int

	viewMode ViewMode
	showHelp bool
	quitting bool
}

// NewModel creates a dashboard that refreshes every interval. timeout bounds
// one collection cycle (0 means one interval).
func NewModel(source Source, interval, timeout time.Duration) Model {
	if timeout == 0 {
		timeout = interval
	}
	// collecting starts true because Init kicks off the first cycle.
	return Model{
		source:     source,
		interval:   interval,
		timeout:    timeout,
		now:        time.Now,
		collecting: true,
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(TitleStyle)),
	}
}

// Init starts the tick timer and triggers an initial collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.collectCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refreshContent()

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.startCollect())

	case resultsMsg:
		m.collecting = false
		m.cycles++
		m.results = msg.results
		m.lastUpdate = msg.time
		m.rendered = m.source.Format(msg.results)
		m.refreshContent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startCollect marks a collection in flight and returns its command. It
// returns nil when one is already running.
func (m *Model) startCollect() tea.Cmd {
	if m.collecting {
		return nil
	}
	m.collecting = true
	return m.collectCmd()
}

// collectCmd collects every coin. It captures what it needs so it can run
// off the UI goroutine without touching the model.
func (m Model) collectCmd() tea.Cmd {
	source, timeout, now := m.source, m.timeout, m.now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		results := source.Collect(ctx)
		return resultsMsg{results: results, time: now()}
	}
}

func (m *Model) setViewMode(v ViewMode) {
	m.viewMode = v
	m.refreshContent()
	m.viewport.GotoTop()
}

func (m *Model) refreshContent() {
	if !m.viewportReady {
		return
	}
	if m.viewMode == ViewErrors {
		m.viewport.SetContent(m.renderErrors())
		return
	}
	m.viewport.SetContent(m.rendered)
}

// OnlineCount returns the number of coins collected without error.
func (m Model) OnlineCount() int {
	n := 0
	for _, r := range m.results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Collecting reports whether a collection cycle is in flight.
func (m Model) Collecting() bool {
	return m.collecting
}

// Cycles returns how many collection cycles have completed.
func (m Model) Cycles() int {
	return m.cycles
}

// SecondsSinceUpdate returns seconds elapsed since the last completed cycle.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}
