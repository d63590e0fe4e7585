// Package grid projects shelf data onto the physical shelf layout.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout describes the physical shelf: how many columns it has and how many
// rows each column holds.
type Layout struct {
	Columns int
	Rows    int
	// Short overrides Rows for specific columns.
	Short map[int]int
}

// DefaultLayout is the shelf the tracker was built for: 15 columns of 5
// slots, except column 8 (a single slot) and columns 3 to 7 (4 slots).
func DefaultLayout() Layout {
	l := Layout{Columns: 15, Rows: 5, Short: map[int]int{8: 1}}
	for c := 3; c <= 7; c++ {
		l.Short[c] = 4
	}
	return l
}

// RowsFor returns the number of slots in column col.
func (l Layout) RowsFor(col int) int {
	if n, ok := l.Short[col]; ok {
		return n
	}
	return l.Rows
}

// Contains reports whether (col, row) is a physical slot.
func (l Layout) Contains(col, row int) bool {
	return col >= 1 && col <= l.Columns && row >= 1 && row <= l.RowsFor(col)
}

// ParseOverrides reads per-column row counts written as comma-separated
// "col:rows" or "first-last:rows" entries, e.g. "8:1,3-7:4".
func ParseOverrides(s string) (map[int]int, error) {
	out := make(map[int]int)
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		cols, rows, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("column override %q: want col:rows", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rows))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("column override %q: rows must be a positive number", part)
		}

		first, last, isRange := strings.Cut(cols, "-")
		lo, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil || lo < 1 {
			return nil, fmt.Errorf("column override %q: bad column", part)
		}
		hi := lo
		if isRange {
			hi, err = strconv.Atoi(strings.TrimSpace(last))
			if err != nil || hi < lo {
				return nil, fmt.Errorf("column override %q: bad column range", part)
			}
		}
		for c := lo; c <= hi; c++ {
			out[c] = n
		}
	}
	return out, nil
}

// Validate checks that the layout has at least one slot.
func (l Layout) Validate() error {
	if l.Columns < 1 {
		return fmt.Errorf("grid needs at least one column, got %d", l.Columns)
	}
	if l.Rows < 1 {
		return fmt.Errorf("grid needs at least one row, got %d", l.Rows)
	}
	return nil
}
