package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/editor"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// entryItem is one row of the cell editor.
type entryItem struct {
	index    int
	nb       shelf.Notebook
	selected bool
}

// FilterValue implements list.Item
func (e entryItem) FilterValue() string { return e.nb.Barcode }

func entryLine(item list.Item, _ int) string {
	e, ok := item.(entryItem)
	if !ok {
		return ""
	}

	box := "[ ]"
	if e.selected {
		box = "[x]"
	}
	barcode := StyleBarcode.Render(e.nb.Barcode)
	if e.nb.Blank() {
		barcode = StyleError.Render("(barcode required)")
	}
	line := fmt.Sprintf("%s #%d %s", box, e.index+1, barcode)
	if e.nb.Title != "" {
		line += " " + StyleHelp.Render(e.nb.Title)
	}
	return line
}

func newEntryList() list.Model {
	l := list.New(nil, delegate.New(entryLine).WithCursor("› ", StyleHighlight), 60, 8)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.Styles.NoItems = StyleHelp
	l.SetStatusBarItemName("notebook", "notebooks")
	return l
}

// refreshEntries rebuilds the editor rows from the draft.
func (m *appModel) refreshEntries() {
	if m.draft == nil {
		return
	}
	items := m.draft.Items()
	rows := make([]list.Item, len(items))
	for i, nb := range items {
		rows[i] = entryItem{index: i, nb: nb, selected: m.draft.IsSelected(nb.Barcode)}
	}
	idx := m.entries.Index()
	m.entries.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx >= 0 {
		m.entries.Select(idx)
	}
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.draft
	i := m.entries.Index()

	switch {
	case key.Matches(msg, m.ekeys.Close):
		return m.closeEditor()

	case key.Matches(msg, m.ekeys.Up):
		m.entries.CursorUp()
		return m, nil

	case key.Matches(msg, m.ekeys.Down):
		m.entries.CursorDown()
		return m, nil

	case key.Matches(msg, m.ekeys.Add):
		idx := d.Add()
		m.refreshEntries()
		m.entries.Select(idx)
		return m.startEdit(fieldBarcode)

	case key.Matches(msg, m.ekeys.Edit):
		if d.Len() == 0 {
			return m, nil
		}
		return m.startEdit(fieldBarcode)

	case key.Matches(msg, m.ekeys.Title):
		if d.Len() == 0 {
			return m, nil
		}
		return m.startEdit(fieldTitle)

	case key.Matches(msg, m.ekeys.Remove):
		if err := d.Remove(i); err != nil {
			return m, nil
		}
		m.refreshEntries()
		return m, nil

	case key.Matches(msg, m.ekeys.Toggle):
		if i >= 0 && i < d.Len() {
			d.Toggle(d.Items()[i].Barcode)
			m.refreshEntries()
		}
		return m, nil

	case key.Matches(msg, m.ekeys.Save):
		if err := d.Commit(m.opts.Store); err != nil {
			if errors.Is(err, editor.ErrBlankBarcode) {
				return m, m.setToast("Every notebook needs a barcode before saving", true)
			}
			m.leaveEditor()
			return m, m.report(err)
		}
		id := d.Cell()
		m.leaveEditor()
		return m, m.setToast("Saved "+slotLabel(id), false)

	case key.Matches(msg, m.ekeys.Delete):
		id := d.Cell()
		err := m.opts.Store.Delete(id)
		m.leaveEditor()
		if err != nil {
			return m, m.report(err)
		}
		return m, m.setToast("Cleared "+slotLabel(id), false)

	case key.Matches(msg, m.ekeys.Move):
		sel := d.Selected()
		if err := m.flow.Arm(sel); err != nil {
			return m, m.setToast(err.Error(), true)
		}
		// The editor closes without saving; the move works on stored data.
		m.opts.Store.SetActiveCell("")
		m.draft = nil
		m.mode = modeGrid
		return m, nil
	}
	return m, nil
}

// closeEditor dismisses the editor following the configured close policy.
func (m appModel) closeEditor() (tea.Model, tea.Cmd) {
	saved, err := m.draft.Close(m.opts.CloseBehavior, m.opts.Store)
	id := m.draft.Cell()
	m.leaveEditor()
	if err != nil {
		return m, m.report(err)
	}
	if saved {
		return m, m.setToast("Saved "+slotLabel(id), false)
	}
	return m, nil
}

// leaveEditor returns to the grid. The store clears its active cell on save
// and delete; this covers the paths that do not touch the store.
func (m *appModel) leaveEditor() {
	m.opts.Store.SetActiveCell("")
	m.flow.CloseEditor()
	m.draft = nil
	m.mode = modeGrid
}

func (m appModel) startEdit(field int) (tea.Model, tea.Cmd) {
	nb := m.draft.Items()[m.entries.Index()]
	m.editField = field
	if field == fieldTitle {
		m.input.Placeholder = "title (optional)"
		m.input.SetValue(nb.Title)
	} else {
		m.input.Placeholder = "scan or type a barcode"
		m.input.SetValue(nb.Barcode)
	}
	m.input.CursorEnd()
	m.mode = modeEditField
	cmd := m.input.Focus()
	return m, cmd
}

func (m appModel) updateEditField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.pkeys.Cancel):
		m.input.Blur()
		m.mode = modeEditor
		return m, nil

	case key.Matches(msg, m.pkeys.Submit):
		i := m.entries.Index()
		value := m.input.Value()
		if m.editField == fieldTitle {
			_ = m.draft.SetTitle(i, strings.TrimSpace(value))
		} else {
			_ = m.draft.SetBarcode(i, value)
		}
		m.input.Blur()
		m.mode = modeEditor
		m.refreshEntries()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) editorView() string {
	d := m.draft
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Edit slot " + slotLabel(d.Cell())))
	if d.Dirty() {
		b.WriteString(StyleHelp.Render("  (modified)"))
	}
	b.WriteString("\n")
	if d.Len() == 0 {
		b.WriteString(StyleHelp.Render("No notebooks yet. Press n to add one."))
	} else {
		b.WriteString(m.entries.View())
	}
	b.WriteString("\n")

	if m.mode == modeEditField {
		label := "Barcode"
		if m.editField == fieldTitle {
			label = "Title"
		}
		b.WriteString(StyleHighlight.Render(label+" ") + m.input.View())
		b.WriteString("\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "enter apply"},
			{Label: "esc cancel"},
		}, "", m.footerWidth()))
		return b.String()
	}

	if !d.CanSave() {
		b.WriteString(StyleError.Render("Fill in every barcode to save."))
		b.WriteString("\n")
	}
	k := m.ekeys
	b.WriteString(RenderFooterBar(shortcutsFor(
		k.Add, k.Edit, k.Title, k.Remove, k.Toggle, k.Move, k.Save, k.Delete, k.Close,
	), m.activeCmd, m.footerWidth()))
	return b.String()
}
