// Package delegate renders single-line list rows with a cursor marker.
package delegate

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// LineFunc renders the text of one row. width is the room left after the
// cursor column; zero means unknown. An empty result skips the row.
type LineFunc func(item list.Item, width int) string

// Row is a list.ItemDelegate drawing one line per item. The focused row is
// prefixed with the cursor; the others are indented to match.
type Row struct {
	line   LineFunc
	cursor string
	style  lipgloss.Style
}

// New returns a Row delegate using "› " as the cursor.
func New(line LineFunc) Row {
	return Row{line: line, cursor: "› ", style: lipgloss.NewStyle().Bold(true)}
}

// WithCursor returns a copy drawing cursor in style.
func (r Row) WithCursor(cursor string, style lipgloss.Style) Row {
	r.cursor = cursor
	r.style = style
	return r
}

// Height implements list.ItemDelegate
func (r Row) Height() int { return 1 }

// Spacing implements list.ItemDelegate
func (r Row) Spacing() int { return 0 }

// Update implements list.ItemDelegate
func (r Row) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate
func (r Row) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if r.line == nil || item == nil {
		return
	}
	gutter := ansi.StringWidth(r.cursor)
	width := max(m.Width()-gutter, 0)

	text := r.line(item, width)
	if text == "" {
		return
	}
	if width > 0 {
		text = ansi.Truncate(text, width, "…")
	}

	prefix := strings.Repeat(" ", gutter)
	if index == m.Index() {
		prefix = r.style.Render(r.cursor)
	}
	_, _ = fmt.Fprint(w, prefix+text)
}
