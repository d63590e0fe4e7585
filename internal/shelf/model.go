package shelf

import (
	"sort"
	"strings"
)

// AnchorCell is the cell seeded on first run and after a reset.
const AnchorCell = "1-1"

// Notebook is one barcoded item stored in a shelf cell.
type Notebook struct {
	Barcode string `json:"barcode"`
	Title   string `json:"title,omitempty"`
}

// Blank reports whether the barcode is empty after trimming.
func (n Notebook) Blank() bool {
	return strings.TrimSpace(n.Barcode) == ""
}

// Data maps cell IDs ("col-row") to the notebooks they hold, in display order.
type Data map[string][]Notebook

// Seed returns the single-anchor-cell state.
func Seed() Data {
	return Data{AnchorCell: []Notebook{}}
}

// Clone returns a deep copy. Nil lists become empty lists so the JSON
// encoding never contains null cells.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for id, nbs := range d {
		out[id] = cloneList(nbs)
	}
	return out
}

// Cells returns the cell IDs in grid order (column, then row). Keys that are
// not well-formed cell IDs sort last, lexically.
func (d Data) Cells() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	SortCellKeys(ids)
	return ids
}

// Occupied reports whether the cell holds at least one notebook.
func (d Data) Occupied(id string) bool {
	return len(d[id]) > 0
}

// Count returns the total number of notebooks across all cells.
func (d Data) Count() int {
	n := 0
	for _, nbs := range d {
		n += len(nbs)
	}
	return n
}

// FilterBlank drops notebooks whose barcode is empty after trimming.
func FilterBlank(nbs []Notebook) []Notebook {
	out := make([]Notebook, 0, len(nbs))
	for _, nb := range nbs {
		if nb.Blank() {
			continue
		}
		out = append(out, nb)
	}
	return out
}

// HasBarcode reports whether any notebook in the list carries barcode.
func HasBarcode(nbs []Notebook, barcode string) bool {
	for _, nb := range nbs {
		if nb.Barcode == barcode {
			return true
		}
	}
	return false
}

// SortCellKeys sorts cell keys in grid order.
func SortCellKeys(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, errA := ParseCellID(ids[i])
		b, errB := ParseCellID(ids[j])
		switch {
		case errA != nil && errB != nil:
			return ids[i] < ids[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		default:
			return a.Less(b)
		}
	})
}

func cloneList(nbs []Notebook) []Notebook {
	out := make([]Notebook, len(nbs))
	copy(out, nbs)
	return out
}
