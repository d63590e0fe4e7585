package grid

import (
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
)

const (
	// MaxGlyphs is how many notebook markers a cell shows before it is full.
	MaxGlyphs = 4
	// DefaultMaxExtent bounds how far the grid grows past the layout.
	DefaultMaxExtent = 64
)

// Flags reports the transient state of a cell. *store.Store satisfies it.
type Flags interface {
	IsUpdated(id string) bool
	IsDeleted(id string) bool
}

// Cell is one rendered position.
type Cell struct {
	ID        shelf.CellID
	Notebooks []shelf.Notebook
	// InLayout is false for cells that only exist because data lives there.
	InLayout  bool
	Visible   bool
	Anchor    bool
	Updated   bool
	Deleted   bool
	SearchHit bool
}

// Key is the cell's "col-row" identifier.
func (c Cell) Key() string { return c.ID.String() }

// Occupied reports whether the cell holds notebooks.
func (c Cell) Occupied() bool { return len(c.Notebooks) > 0 }

// Glyphs is the number of notebook markers to draw.
func (c Cell) Glyphs() int {
	return min(len(c.Notebooks), MaxGlyphs)
}

// Grid is a column-major view of the shelf.
type Grid struct {
	Columns [][]Cell
	// Overflow lists occupied cells too far out to draw, in grid order.
	Overflow []string
}

// Options controls Build.
type Options struct {
	// ShowAll makes every layout slot visible, not just the ones near data.
	ShowAll bool
	// SearchHit is the cell ID matched by the current search, if any.
	SearchHit string
	Flags     Flags
	// MaxExtent caps the column and row count past the layout;
	// 0 means DefaultMaxExtent.
	MaxExtent int
}

// bounds is the largest column and row Build will draw.
func (l Layout) bounds(extent int) (cols, rows int) {
	if extent <= 0 {
		extent = DefaultMaxExtent
	}
	rows = l.Rows
	for _, n := range l.Short {
		rows = max(rows, n)
	}
	return max(l.Columns, extent), max(rows, extent)
}

// Visible returns the set of cell IDs shown without ShowAll: the anchor,
// every occupied cell and the orthogonal neighbours of occupied cells.
func Visible(d shelf.Data) map[string]bool {
	vis := map[string]bool{shelf.AnchorCell: true}
	for id, nbs := range d {
		if len(nbs) == 0 {
			continue
		}
		c, err := shelf.ParseCellID(id)
		if err != nil {
			continue
		}
		vis[id] = true
		for _, n := range c.Neighbors() {
			vis[n.String()] = true
		}
	}
	return vis
}

// Build lays d out on l. The grid grows past the layout when visible cells
// fall outside it, up to opts.MaxExtent columns and rows. Occupied cells
// beyond that are reported in Overflow instead of drawn.
func Build(l Layout, d shelf.Data, opts Options) Grid {
	vis := Visible(d)
	maxCols, maxRows := l.bounds(opts.MaxExtent)

	// Deepest visible row per column, including columns past the layout.
	depth := make(map[int]int)
	cols := l.Columns
	var overflow []string
	for id := range vis {
		c, err := shelf.ParseCellID(id)
		if err != nil {
			continue
		}
		if c.Col > maxCols || c.Row > maxRows {
			if len(d[id]) > 0 {
				overflow = append(overflow, id)
			}
			continue
		}
		if c.Row > depth[c.Col] {
			depth[c.Col] = c.Row
		}
		if c.Col > cols {
			cols = c.Col
		}
	}

	shelf.SortCellKeys(overflow)
	g := Grid{Columns: make([][]Cell, cols), Overflow: overflow}
	for col := 1; col <= cols; col++ {
		rows := depth[col]
		if col <= l.Columns && l.RowsFor(col) > rows {
			rows = l.RowsFor(col)
		}
		cells := make([]Cell, 0, rows)
		for row := 1; row <= rows; row++ {
			id := shelf.CellID{Col: col, Row: row}
			key := id.String()
			cell := Cell{
				ID:        id,
				Notebooks: d[key],
				InLayout:  l.Contains(col, row),
				Visible:   vis[key],
				Anchor:    key == shelf.AnchorCell,
				SearchHit: opts.SearchHit != "" && key == opts.SearchHit,
			}
			if opts.ShowAll && cell.InLayout {
				cell.Visible = true
			}
			if opts.Flags != nil {
				cell.Updated = opts.Flags.IsUpdated(key)
				cell.Deleted = opts.Flags.IsDeleted(key)
			}
			cells = append(cells, cell)
		}
		g.Columns[col-1] = cells
	}
	return g
}

// Rows is the height of the tallest column.
func (g Grid) Rows() int {
	n := 0
	for _, col := range g.Columns {
		n = max(n, len(col))
	}
	return n
}

// At returns the cell at (col, row), 1-based.
func (g Grid) At(col, row int) (Cell, bool) {
	if col < 1 || col > len(g.Columns) {
		return Cell{}, false
	}
	cells := g.Columns[col-1]
	if row < 1 || row > len(cells) {
		return Cell{}, false
	}
	return cells[row-1], true
}

// Selectable reports whether the cursor may rest on (col, row).
func (g Grid) Selectable(col, row int) bool {
	c, ok := g.At(col, row)
	return ok && c.Visible
}
