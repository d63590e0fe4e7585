// Package editor holds the working copy of one cell while it is being edited.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
)

var (
	// ErrBlankBarcode blocks a commit while any entry has an empty barcode.
	ErrBlankBarcode = errors.New("every notebook needs a barcode")
	// ErrIndex is returned for an entry index outside the draft.
	ErrIndex = errors.New("no notebook at that position")
)

// CloseBehavior decides what closing the editor does with unsaved edits.
type CloseBehavior int

const (
	// CloseCommit saves a changed, valid draft on close.
	CloseCommit CloseBehavior = iota
	// CloseDiscard drops the draft on close.
	CloseDiscard
)

func (b CloseBehavior) String() string {
	if b == CloseDiscard {
		return "discard"
	}
	return "commit"
}

// ParseCloseBehavior accepts "commit" or "discard".
func ParseCloseBehavior(s string) (CloseBehavior, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "commit":
		return CloseCommit, nil
	case "discard":
		return CloseDiscard, nil
	default:
		return CloseCommit, fmt.Errorf("unknown close behavior %q (want commit or discard)", s)
	}
}

// Saver persists a cell. *store.Store satisfies it.
type Saver interface {
	Save(id string, nbs []shelf.Notebook) error
}

// Draft is an editable copy of a cell's notebook list. Changes stay local
// until Commit.
type Draft struct {
	cell     string
	orig     []shelf.Notebook
	items    []shelf.Notebook
	selected map[string]bool
}

// New starts a draft of cell holding nbs.
func New(cell string, nbs []shelf.Notebook) *Draft {
	orig := make([]shelf.Notebook, len(nbs))
	copy(orig, nbs)
	items := make([]shelf.Notebook, len(nbs))
	copy(items, nbs)
	return &Draft{
		cell:     cell,
		orig:     orig,
		items:    items,
		selected: make(map[string]bool),
	}
}

// Cell is the cell being edited.
func (d *Draft) Cell() string { return d.cell }

// Len is the number of entries, blanks included.
func (d *Draft) Len() int { return len(d.items) }

// Items returns a copy of the entries.
func (d *Draft) Items() []shelf.Notebook {
	out := make([]shelf.Notebook, len(d.items))
	copy(out, d.items)
	return out
}

// Add appends a blank entry and returns its index.
func (d *Draft) Add() int {
	d.items = append(d.items, shelf.Notebook{})
	return len(d.items) - 1
}

// SetBarcode edits the barcode of entry i.
func (d *Draft) SetBarcode(i int, barcode string) error {
	if i < 0 || i >= len(d.items) {
		return ErrIndex
	}
	old := d.items[i].Barcode
	d.items[i].Barcode = barcode
	d.forget(old)
	return nil
}

// SetTitle edits the title of entry i.
func (d *Draft) SetTitle(i int, title string) error {
	if i < 0 || i >= len(d.items) {
		return ErrIndex
	}
	d.items[i].Title = title
	return nil
}

// Remove drops entry i.
func (d *Draft) Remove(i int) error {
	if i < 0 || i >= len(d.items) {
		return ErrIndex
	}
	old := d.items[i].Barcode
	d.items = append(d.items[:i], d.items[i+1:]...)
	d.forget(old)
	return nil
}

// Toggle flips the selection of barcode. Blank barcodes cannot be selected.
func (d *Draft) Toggle(barcode string) {
	if strings.TrimSpace(barcode) == "" {
		return
	}
	if d.selected[barcode] {
		delete(d.selected, barcode)
		return
	}
	if shelf.HasBarcode(d.items, barcode) {
		d.selected[barcode] = true
	}
}

// IsSelected reports whether barcode is selected.
func (d *Draft) IsSelected(barcode string) bool {
	return d.selected[barcode]
}

// Selected returns one record per selected barcode, in list order.
func (d *Draft) Selected() []shelf.Notebook {
	var out []shelf.Notebook
	for _, nb := range d.items {
		if !d.selected[nb.Barcode] || shelf.HasBarcode(out, nb.Barcode) {
			continue
		}
		out = append(out, nb)
	}
	return out
}

// CanSave is false while any entry has a blank barcode.
func (d *Draft) CanSave() bool {
	for _, nb := range d.items {
		if nb.Blank() {
			return false
		}
	}
	return true
}

// Dirty reports whether the entries differ from the cell's contents when
// the draft was opened.
func (d *Draft) Dirty() bool {
	if len(d.items) != len(d.orig) {
		return true
	}
	for i := range d.items {
		if d.items[i] != d.orig[i] {
			return true
		}
	}
	return false
}

// Result is what Commit saves: the entries with blank barcodes dropped.
func (d *Draft) Result() []shelf.Notebook {
	return shelf.FilterBlank(d.items)
}

// Commit saves the draft.
func (d *Draft) Commit(s Saver) error {
	if !d.CanSave() {
		return ErrBlankBarcode
	}
	return s.Save(d.cell, d.Result())
}

// Close ends the edit. With CloseCommit a dirty draft is saved, dropping
// blank entries; it reports whether a save happened.
func (d *Draft) Close(b CloseBehavior, s Saver) (bool, error) {
	if b == CloseDiscard || !d.Dirty() {
		return false, nil
	}
	if err := s.Save(d.cell, d.Result()); err != nil {
		return true, err
	}
	return true, nil
}

// forget drops a selection whose barcode no longer appears in the list.
func (d *Draft) forget(barcode string) {
	if d.selected[barcode] && !shelf.HasBarcode(d.items, barcode) {
		delete(d.selected, barcode)
	}
}
