package shelf

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCellID is returned for strings that are not "<col>-<row>" with
// positive integers.
var ErrInvalidCellID = errors.New("invalid cell id")

var cellIDPattern = regexp.MustCompile(`^\d+-\d+$`)

// CellID addresses one shelf slot. Both coordinates start at 1.
type CellID struct {
	Col int
	Row int
}

// ParseCellID parses "col-row".
func ParseCellID(s string) (CellID, error) {
	if !cellIDPattern.MatchString(s) {
		return CellID{}, fmt.Errorf("%w: %q (want <col>-<row>, e.g. 2-3)", ErrInvalidCellID, s)
	}
	colStr, rowStr, _ := strings.Cut(s, "-")
	col, errCol := strconv.Atoi(colStr)
	row, errRow := strconv.Atoi(rowStr)
	if errCol != nil || errRow != nil || col < 1 || row < 1 {
		return CellID{}, fmt.Errorf("%w: %q (column and row start at 1)", ErrInvalidCellID, s)
	}
	return CellID{Col: col, Row: row}, nil
}

// String returns the dictionary key form.
func (c CellID) String() string {
	return fmt.Sprintf("%d-%d", c.Col, c.Row)
}

// Label is the human-facing slot name, e.g. "C3, L2".
func (c CellID) Label() string {
	return fmt.Sprintf("C%d, L%d", c.Col, c.Row)
}

// Less orders by column, then row.
func (c CellID) Less(o CellID) bool {
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Row < o.Row
}

// Neighbors returns the orthogonally adjacent cells that exist (coordinates
// never drop below 1).
func (c CellID) Neighbors() []CellID {
	out := []CellID{{c.Col + 1, c.Row}, {c.Col, c.Row + 1}}
	if c.Col > 1 {
		out = append(out, CellID{c.Col - 1, c.Row})
	}
	if c.Row > 1 {
		out = append(out, CellID{c.Col, c.Row - 1})
	}
	return out
}
