package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/editor"
	"github.com/blackwell-systems/shelfscribe/internal/grid"
	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m appModel) buildGrid() grid.Grid {
	hit, _ := m.opts.Store.Search(m.query)
	return grid.Build(m.opts.Layout, m.opts.Store.Snapshot(), grid.Options{
		ShowAll:   m.showAll,
		SearchHit: hit,
		Flags:     m.opts.Store,
	})
}

func (m appModel) cursorKey() string {
	return shelf.CellID{Col: m.col, Row: m.row}.String()
}

// clampCursor keeps the cursor inside the grid after it changes shape.
func (m *appModel) clampCursor() {
	g := m.buildGrid()
	m.col = min(max(m.col, 1), len(g.Columns))
	if m.col < 1 {
		m.col, m.row = 1, 1
		return
	}
	m.row = min(max(m.row, 1), len(g.Columns[m.col-1]))
	if m.row < 1 {
		m.row = 1
	}
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.buildGrid()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 1 {
			m.row--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.row < len(g.Columns[m.col-1]) {
			m.row++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.col > 1 {
			m.col--
			m.row = max(1, min(m.row, len(g.Columns[m.col-1])))
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.col < len(g.Columns) {
			m.col++
			m.row = max(1, min(m.row, len(g.Columns[m.col-1])))
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.flow.State() == move.Armed {
			m.flow.Cancel()
			return m, m.setToast("Move cancelled", false)
		}
		if m.query != "" {
			m.query = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if !g.Selectable(m.col, m.row) {
			return m, nil
		}
		if m.flow.State() == move.Armed {
			return m.completeMove(m.cursorKey())
		}
		return m.openEditor(m.cursorKey())

	case key.Matches(msg, m.keys.Target):
		if m.flow.State() != move.Armed {
			return m, nil
		}
		return m.openPrompt(modeTarget, "", "col-row, e.g. 3-2")

	case key.Matches(msg, m.keys.Search):
		m.activeCmd = "/"
		next, cmd := m.openPrompt(modeSearch, m.query, "barcode")
		return next, tea.Batch(cmd, HighlightCmd())

	case key.Matches(msg, m.keys.ShowAll):
		m.showAll = !m.showAll
		m.activeCmd = "a"
		m.clampCursor()
		return m, HighlightCmd()

	case key.Matches(msg, m.keys.Copy):
		nbs, _ := m.opts.Store.Cell(m.cursorKey())
		if len(nbs) == 0 {
			return m, m.setToast("Nothing to copy in this slot", true)
		}
		codes := make([]string, len(nbs))
		for i, nb := range nbs {
			codes[i] = nb.Barcode
		}
		if err := m.opts.CopyText(strings.Join(codes, "\n")); err != nil {
			return m, m.setToast(fmt.Sprintf("Copy failed: %v", err), true)
		}
		return m, m.setToast(fmt.Sprintf("Copied %d barcode(s)", len(codes)), false)

	case key.Matches(msg, m.keys.Import):
		return m.openPrompt(modeImportPath, transfer.DefaultExportName, "path to a JSON export")

	case key.Matches(msg, m.keys.Export):
		return m.openPrompt(modeExportPath, transfer.DefaultExportName, "where to write the export")

	case key.Matches(msg, m.keys.Reset):
		m.mode = modeResetConfirm
		return m, nil
	}
	return m, nil
}

func (m appModel) openEditor(id string) (tea.Model, tea.Cmd) {
	nbs, _ := m.opts.Store.Cell(id)
	m.draft = editor.New(id, nbs)
	m.opts.Store.SetActiveCell(id)
	m.flow.Open(id)
	m.mode = modeEditor
	m.refreshEntries()
	m.entries.Select(0)
	return m, nil
}

func (m appModel) completeMove(target string) (tea.Model, tea.Cmd) {
	n := len(m.flow.Pending())
	if err := m.flow.Complete(target, m.opts.Store); err != nil {
		return m, m.report(err)
	}
	if id, err := shelf.ParseCellID(target); err == nil {
		m.col, m.row = id.Col, id.Row
	}
	m.clampCursor()
	return m, m.setToast(fmt.Sprintf("Moved %d notebook(s) to %s", n, slotLabel(target)), false)
}

func slotLabel(id string) string {
	c, err := shelf.ParseCellID(id)
	if err != nil {
		return id
	}
	return c.Label()
}

// detailsView lists the notebooks in the focused cell.
func (m appModel) detailsView(width int) string {
	id := m.cursorKey()
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Slot: " + slotLabel(id)))
	b.WriteString("\n")

	nbs, _ := m.opts.Store.Cell(id)
	if len(nbs) == 0 {
		b.WriteString(StyleHelp.Render("Empty slot"))
		return b.String()
	}
	for _, nb := range nbs {
		line := StyleBarcode.Render(nb.Barcode)
		if nb.Title != "" {
			line += " " + StyleHelp.Render(nb.Title)
		}
		b.WriteString(ansi.Truncate(line, width, "…"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
