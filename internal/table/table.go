// Package table renders fixed-width metric tables for the terminal.
//
// Alignment is computed on visible text only. Color is applied by a
// ui.Painter around the already-padded cell, so escape sequences never
// shift a column.
package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/rileyhilliard/ntxmon/internal/ui"
)

// TimestampLayout is the footer timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

const ellipsis = "…"

// Column pairs a header label with a fixed display width.
type Column struct {
	Title string
	Width int
}

// Cell is one visible value and the severity that colors it.
type Cell struct {
	Text     string
	Severity ui.Severity
}

// Row is one rendered table line worth of cells.
type Row []Cell

// Worst returns the most severe classification in the row.
func (r Row) Worst() ui.Severity {
	worst := ui.SeverityNone
	for _, c := range r {
		worst = ui.Worse(worst, c.Severity)
	}
	return worst
}

// Unavailable reports whether any cell carries the unavailable sentinel.
func (r Row) Unavailable() bool {
	return r.Worst() == ui.SeverityUnavailable
}

// Renderer renders header, rows, separators and footer for one column set.
// Its width is fixed at construction time.
type Renderer struct {
	columns []Column
	width   int
	painter *ui.Painter
}

// NewRenderer creates a renderer. A nil painter renders without color.
func NewRenderer(columns []Column, painter *ui.Painter) *Renderer {
	if painter == nil {
		painter = ui.Plain()
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)

	width := 0
	for _, c := range cols {
		width += c.Width
	}
	width += 2 * (len(cols) + 1)

	return &Renderer{columns: cols, width: width, painter: painter}
}

// Width is the table width used by separators and the footer.
func (r *Renderer) Width() int {
	return r.width
}

// Columns returns a copy of the column set.
func (r *Renderer) Columns() []Column {
	cols := make([]Column, len(r.columns))
	copy(cols, r.columns)
	return cols
}

// Header renders the column titles.
func (r *Renderer) Header() string {
	var b strings.Builder
	b.WriteString(" | ")
	for i, c := range r.columns {
		b.WriteString(r.pad(i, c.Title))
		b.WriteString(" |")
	}
	return b.String()
}

// Row renders one metric row. A row containing an unavailable cell is
// rendered uncolored and then wrapped in the alert color as a whole line.
//
// Row panics with a RENDER error when the row arity does not match the
// column set. Collectors always produce full-arity rows, so a mismatch is
// a programming error.
func (r *Renderer) Row(row Row) string {
	if len(row) != len(r.columns) {
		panic(errors.New(errors.ErrRender,
			fmt.Sprintf("row has %d cells, table has %d columns", len(row), len(r.columns)),
			"Rows must be built from the same column set as the renderer"))
	}

	alert := row.Unavailable()

	var b strings.Builder
	b.WriteString(" | ")
	for i, cell := range row {
		padded := r.pad(i, cell.Text)
		if !alert {
			padded = r.painter.Paint(padded, cell.Severity)
		}
		b.WriteString(padded)
		b.WriteString(" |")
	}

	if alert {
		return r.painter.Alert(b.String())
	}
	return b.String()
}

// Separator renders a dashed rule spanning the table.
func (r *Renderer) Separator() string {
	return " " + strings.Repeat("-", r.width)
}

// Footer renders the timestamp line. When annotation is non-empty it is
// printed before the timestamp. The line is right-justified to the table
// width plus one so it ends under the last border.
func (r *Renderer) Footer(ts time.Time, annotation string) string {
	line := "| " + ts.Format(TimestampLayout) + " |"
	if annotation != "" {
		line = "| " + annotation + " " + line
	}
	return padLeft(line, r.width+1)
}

// Render produces a full table: header, separators, rows and footer.
func (r *Renderer) Render(rows []Row, ts time.Time, annotation string) string {
	lines := make([]string, 0, len(rows)+5)
	lines = append(lines, r.Separator(), r.Header(), r.Separator())
	for _, row := range rows {
		lines = append(lines, r.Row(row))
	}
	lines = append(lines, r.Separator(), r.Footer(ts, annotation))
	return strings.Join(lines, "\n") + "\n"
}

// pad fits text into column i. The first column is a label: it is
// left-justified and truncated when too wide. The rest are values and are
// right-justified. A value wider than its column is never cut; it is
// replaced by an Overflow marker so no digits are silently dropped.
func (r *Renderer) pad(i int, text string) string {
	w := r.columns[i].Width
	if i == 0 {
		if lipgloss.Width(text) > w {
			text = ansi.Truncate(text, w, ellipsis)
		}
		return padRight(text, w)
	}
	if lipgloss.Width(text) > w {
		text = Overflow(w)
	}
	return padLeft(text, w)
}

// Overflow is the marker shown for a value that does not fit a column of
// the given width.
func Overflow(width int) string {
	return strings.Repeat("#", width)
}

func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func padLeft(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
