package delegate_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type row string

func (r row) FilterValue() string { return string(r) }

func render(t *testing.T, d delegate.Row, m list.Model, index int) string {
	t.Helper()
	var b bytes.Buffer
	d.Render(&b, m, index, m.Items()[index])
	return b.String()
}

func TestRow_CursorAndIndent(t *testing.T) {
	d := delegate.New(func(item list.Item, width int) string {
		return string(item.(row))
	}).WithCursor("> ", lipgloss.NewStyle())

	m := list.New([]list.Item{row("first"), row("second")}, d, 40, 5)

	if got := render(t, d, m, 0); got != "> first" {
		t.Errorf("focused row = %q", got)
	}
	if got := render(t, d, m, 1); got != "  second" {
		t.Errorf("other row = %q", got)
	}
}

func TestRow_TruncatesToWidth(t *testing.T) {
	d := delegate.New(func(item list.Item, width int) string {
		return strings.Repeat("x", 50)
	}).WithCursor("> ", lipgloss.NewStyle())

	m := list.New([]list.Item{row("a")}, d, 12, 5)
	got := render(t, d, m, 0)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long row should be truncated, got %q", got)
	}
	if n := lipgloss.Width(got); n > 12 {
		t.Errorf("row width = %d, want <= 12", n)
	}
}

func TestRow_EmptyLineSkipped(t *testing.T) {
	d := delegate.New(func(list.Item, int) string { return "" })
	m := list.New([]list.Item{row("a")}, d, 40, 5)
	if got := render(t, d, m, 0); got != "" {
		t.Errorf("empty line should render nothing, got %q", got)
	}
}
