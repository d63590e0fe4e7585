package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/grid"
	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(1, 2)
	width := max(m.width-8, 40)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1).
		Render("shelfscribe - Notebook Shelf")

	snap := m.opts.Store.Snapshot()
	occupied := 0
	for _, nbs := range snap {
		if len(nbs) > 0 {
			occupied++
		}
	}
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("  %d slots in use · %d notebooks", occupied, snap.Count()))

	parts := []string{header, status}

	if m.query != "" {
		line := "  search: " + StyleBarcode.Render(m.query)
		if id, ok := m.opts.Store.Search(m.query); ok {
			line += StyleOK.Render("  found in " + slotLabel(id))
		} else {
			line += StyleError.Render("  no match")
		}
		parts = append(parts, line)
	}

	if m.flow.State() == move.Armed {
		parts = append(parts, StyleBanner.Render(fmt.Sprintf(
			"Moving %d notebook(s) from %s: pick a slot and press enter, t to type one, esc to cancel",
			len(m.flow.Pending()), slotLabel(m.flow.Source()))))
	}

	parts = append(parts, "", grid.Render(m.buildGrid(), grid.RenderOptions{Cursor: m.cursorKey()}), "")

	switch m.mode {
	case modeEditor, modeEditField:
		parts = append(parts, StylePanel.Render(m.editorView()))
	case modeGrid:
		parts = append(parts, m.detailsView(width))
	default:
		parts = append(parts, m.detailsView(width), "", m.promptView())
	}

	if m.toast != "" {
		style := StyleOK
		if m.toastErr {
			style = StyleError
		}
		parts = append(parts, "", style.Render(m.toast))
	}

	if m.mode == modeGrid {
		parts = append(parts, "", m.gridFooter())
	}

	return outerStyle.Render(strings.Join(parts, "\n"))
}

func (m appModel) gridFooter() string {
	k := m.keys
	if m.flow.State() == move.Armed {
		return RenderFooterBar([]ShortcutEntry{
			{Label: "←↑↓→ move"},
			{Label: "enter place here"},
			{Key: "t", Label: "t type slot"},
			{Label: "esc cancel"},
		}, m.activeCmd, m.footerWidth())
	}
	shortcuts := append([]ShortcutEntry{{Label: "←↑↓→ move"}},
		shortcutsFor(k.Open, k.Search, k.ShowAll, k.Copy, k.Import, k.Export, k.Reset, k.Quit)...)
	return RenderFooterBar(shortcuts, m.activeCmd, m.footerWidth())
}

// footerWidth is the room inside the outer padding; 0 before the first
// window size message.
func (m appModel) footerWidth() int {
	return max(m.width-6, 0)
}
