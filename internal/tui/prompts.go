package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) openPrompt(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *appModel) closePrompt() {
	m.input.Blur()
	m.input.SetValue("")
	m.mode = modeGrid
}

// updateSearch searches as the user types.
func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.pkeys.Cancel):
		m.query = ""
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.pkeys.Submit):
		m.closePrompt()
		if id, ok := m.opts.Store.Search(m.query); ok {
			if c, err := shelf.ParseCellID(id); err == nil {
				m.col, m.row = c.Col, c.Row
			}
			m.clampCursor()
			if m.cursorKey() != id {
				return m, m.setToast(fmt.Sprintf("Found in %s, beyond the grid", slotLabel(id)), false)
			}
			return m, nil
		}
		if strings.TrimSpace(m.query) != "" {
			return m, m.setToast("No notebook with that barcode", true)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	return m, cmd
}

// updatePrompt handles the single-line prompts: move target, import path
// and export path.
func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.pkeys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.pkeys.Submit):
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeTarget:
			return m.submitTarget(value)
		case modeImportPath:
			return m.submitImportPath(value)
		case modeExportPath:
			return m.submitExportPath(value)
		}
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) submitTarget(value string) (tea.Model, tea.Cmd) {
	n := len(m.flow.Pending())
	err := m.flow.CompleteTyped(value, m.opts.Store)
	switch {
	case errors.Is(err, move.ErrBadTarget), errors.Is(err, move.ErrSameCell):
		// Stay in the prompt so the user can fix the input.
		return m, m.setToast(err.Error(), true)
	case err != nil:
		m.closePrompt()
		return m, m.report(err)
	}
	m.closePrompt()
	if c, err := shelf.ParseCellID(value); err == nil {
		m.col, m.row = c.Col, c.Row
	}
	m.clampCursor()
	return m, m.setToast(fmt.Sprintf("Moved %d notebook(s) to %s", n, slotLabel(value)), false)
}

func (m appModel) submitImportPath(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}
	data, err := transfer.ReadFile(path)
	if err != nil {
		m.closePrompt()
		return m, m.setToast(importErrorText(err), true)
	}
	m.closePrompt()
	m.pendingImport = data
	m.mode = modeImportConfirm
	return m, nil
}

func importErrorText(err error) string {
	switch {
	case errors.Is(err, transfer.ErrReadFile):
		return "Import failed: could not read the file"
	case errors.Is(err, shelf.ErrInvalidJSON):
		return "Import failed: the file is not valid JSON"
	default:
		return "Import failed: " + err.Error()
	}
}

func (m appModel) submitExportPath(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		path = transfer.DefaultExportName
	}
	m.closePrompt()
	if err := transfer.ExportFile(path, m.opts.Store.Snapshot()); err != nil {
		return m, m.setToast("Export failed: "+err.Error(), true)
	}
	return m, m.setToast("Exported to "+path, false)
}

// updateConfirm handles the import mode choice and the reset confirmation.
func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeResetConfirm {
		switch {
		case key.Matches(msg, m.pkeys.Yes):
			m.mode = modeGrid
			m.flow.Cancel()
			m.query = ""
			err := m.opts.Store.Reset()
			m.col, m.row = 1, 1
			if err != nil {
				return m, m.report(err)
			}
			return m, m.setToast("Shelf reset", false)
		case key.Matches(msg, m.pkeys.No), key.Matches(msg, m.pkeys.Cancel), key.Matches(msg, m.pkeys.Submit):
			m.mode = modeGrid
		}
		return m, nil
	}

	var im shelf.ImportMode
	switch {
	case key.Matches(msg, m.pkeys.Merge):
		im = shelf.ModeMerge
	case key.Matches(msg, m.pkeys.Replace):
		im = shelf.ModeReplace
	case key.Matches(msg, m.pkeys.Cancel), key.Matches(msg, m.pkeys.No):
		m.pendingImport = nil
		m.mode = modeGrid
		return m, nil
	default:
		return m, nil
	}

	data := m.pendingImport
	m.pendingImport = nil
	m.mode = modeGrid
	err := m.opts.Store.Import(data, im)
	m.clampCursor()
	if err != nil {
		return m, m.report(err)
	}
	return m, m.setToast(fmt.Sprintf("Imported %d cell(s) (%s)", len(data), im), false)
}

func (m appModel) promptView() string {
	var b strings.Builder
	switch m.mode {
	case modeSearch:
		b.WriteString(StyleHighlight.Render("Search ") + m.input.View())
	case modeTarget:
		b.WriteString(StyleHighlight.Render("Move to ") + m.input.View())
	case modeImportPath:
		b.WriteString(StyleHighlight.Render("Import from ") + m.input.View())
	case modeExportPath:
		b.WriteString(StyleHighlight.Render("Export to ") + m.input.View())
	case modeResetConfirm:
		b.WriteString(StyleHighlight.Render("Reset the shelf? Every slot will be cleared. "))
		b.WriteString(StyleHelp.Render("y/N"))
		return b.String()
	case modeImportConfirm:
		current := m.opts.Store.Snapshot()
		b.WriteString(StyleHeader.Render(fmt.Sprintf("Import %d cell(s)", len(m.pendingImport))))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render("  m " + transfer.Preview(current, m.pendingImport, shelf.ModeMerge).String()))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render("  r " + transfer.Preview(current, m.pendingImport, shelf.ModeReplace).String()))
		b.WriteString("\n")
		b.WriteString(RenderFooterBar(shortcutsFor(m.pkeys.Merge, m.pkeys.Replace, m.pkeys.Cancel), "", m.footerWidth()))
		return b.String()
	default:
		return ""
	}
	b.WriteString("\n")
	b.WriteString(RenderFooterBar(shortcutsFor(m.pkeys.Submit, m.pkeys.Cancel), "", m.footerWidth()))
	return b.String()
}
