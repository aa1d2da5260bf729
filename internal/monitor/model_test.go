package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ntxmon/internal/stats"
	"github.com/rileyhilliard/ntxmon/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	results  []stats.Result
	collects int
}

func (f *fakeSource) Collect(ctx context.Context) []stats.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collects++
	return f.results
}

func (f *fakeSource) Format(results []stats.Result) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.Row[0].Text)
		b.WriteString("\n")
	}
	return b.String()
}

func sampleResults() []stats.Result {
	return []stats.Result{
		{Entity: stats.Entity{Symbol: "KMD"}, Row: table.Row{{Text: "KMD"}}},
		{Entity: stats.Entity{Symbol: "XYZ"}, Row: table.Row{{Text: "XYZ"}}, Err: fmt.Errorf("connection refused")},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// ready returns a sized model that has finished one collection.
func ready(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := NewModel(src, time.Minute, time.Second)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, m.collectCmd()())
	return m
}

func TestModel_InitCollects(t *testing.T) {
	src := &fakeSource{results: sampleResults()}
	m := NewModel(src, time.Minute, 0)

	assert.True(t, m.Collecting())
	assert.NotNil(t, m.Init())
	assert.Equal(t, time.Minute, m.timeout, "timeout defaults to the interval")
}

func TestModel_ResultsRender(t *testing.T) {
	src := &fakeSource{results: sampleResults()}
	m := ready(t, src)

	assert.False(t, m.Collecting())
	assert.Equal(t, 1, m.Cycles())
	assert.Equal(t, 1, m.OnlineCount())
	assert.Equal(t, 1, src.collects)

	view := m.View()
	assert.Contains(t, view, "ntxmon")
	assert.Contains(t, view, "2 coins")
	assert.Contains(t, view, "1 down")
	assert.Contains(t, view, "KMD")
	assert.Contains(t, view, "q quit")
}

func TestModel_RefreshKey(t *testing.T) {
	src := &fakeSource{results: sampleResults()}
	m := ready(t, src)

	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.Collecting())

	// A second refresh while collecting is ignored.
	m, cmd = update(t, m, keyMsg("r"))
	assert.Nil(t, cmd)

	m, _ = update(t, m, resultsMsg{results: src.results, time: time.Now()})
	assert.False(t, m.Collecting())
	assert.Equal(t, 2, m.Cycles())
}

func TestModel_TickCollects(t *testing.T) {
	src := &fakeSource{results: sampleResults()}
	m := ready(t, src)

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.True(t, m.Collecting())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := ready(t, &fakeSource{results: sampleResults()})
			m, cmd := update(t, m, keyMsg(k))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_ErrorsView(t *testing.T) {
	m := ready(t, &fakeSource{results: sampleResults()})

	m, _ = update(t, m, keyMsg("e"))
	assert.Equal(t, ViewErrors, m.viewMode)
	view := m.View()
	assert.Contains(t, view, "XYZ")
	assert.Contains(t, view, "connection refused")

	m, _ = update(t, m, keyMsg("esc"))
	assert.Equal(t, ViewTable, m.viewMode)

	m, _ = update(t, m, keyMsg("e"))
	m, _ = update(t, m, keyMsg("e"))
	assert.Equal(t, ViewTable, m.viewMode)
}

func TestModel_ErrorsViewAllHealthy(t *testing.T) {
	src := &fakeSource{results: sampleResults()[:1]}
	m := ready(t, src)
	m, _ = update(t, m, keyMsg("e"))
	assert.Contains(t, m.View(), "All daemons responding")
}

func TestModel_HelpOverlay(t *testing.T) {
	m := ready(t, &fakeSource{results: sampleResults()})

	m, _ = update(t, m, keyMsg("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, keyMsg("esc"))
	assert.False(t, m.showHelp)
}

func TestModel_WithoutWindowSize(t *testing.T) {
	src := &fakeSource{results: sampleResults()}
	m := NewModel(src, time.Minute, time.Second)
	m, _ = update(t, m, m.collectCmd()())

	assert.Contains(t, m.View(), "KMD")
}

func TestViewMode_String(t *testing.T) {
	assert.Equal(t, "table", ViewTable.String())
	assert.Equal(t, "errors", ViewErrors.String())
}

func TestKeyMap_Help(t *testing.T) {
	assert.Len(t, keys.ShortHelp(), 4)
	assert.Len(t, keys.FullHelp(), 7)
}
