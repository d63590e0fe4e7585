// Package move tracks the multi-step "move notebooks to another cell" flow.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
)

// State of the workflow.
type State int

const (
	Idle State = iota
	Selecting
	Armed
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Armed:
		return "armed"
	default:
		return "idle"
	}
}

var (
	ErrNothingSelected = errors.New("select at least one notebook to move")
	ErrNotArmed        = errors.New("no move in progress")
	ErrBadTarget       = errors.New("target must look like col-row, e.g. 3-2")
	ErrSameCell        = errors.New("target is the cell the notebooks are already in")
)

var targetPattern = regexp.MustCompile(`^\d+-\d+$`)

// Mover applies a move. *store.Store satisfies it.
type Mover interface {
	Move(source string, moved []shelf.Notebook, target string) error
}

// Workflow is the Idle → Selecting → Armed state machine. The zero value is
// Idle.
type Workflow struct {
	state  State
	source string
	moved  []shelf.Notebook
}

// State returns the current state.
func (w *Workflow) State() State { return w.state }

// Source is the cell being edited or moved from.
func (w *Workflow) Source() string { return w.source }

// Pending returns the records waiting to be placed.
func (w *Workflow) Pending() []shelf.Notebook {
	out := make([]shelf.Notebook, len(w.moved))
	copy(out, w.moved)
	return out
}

// Open enters Selecting for cell. It is ignored while a move is armed.
func (w *Workflow) Open(cell string) {
	if w.state == Armed {
		return
	}
	w.state = Selecting
	w.source = cell
	w.moved = nil
}

// CloseEditor leaves Selecting without arming.
func (w *Workflow) CloseEditor() {
	if w.state == Selecting {
		w.reset()
	}
}

// Arm records the selected notebooks and waits for a target.
func (w *Workflow) Arm(selected []shelf.Notebook) error {
	if w.state != Selecting {
		return fmt.Errorf("cannot arm a move while %s", w.state)
	}
	if len(selected) == 0 {
		return ErrNothingSelected
	}
	w.moved = make([]shelf.Notebook, len(selected))
	copy(w.moved, selected)
	w.state = Armed
	return nil
}

// Complete moves the pending records into target, which may be the source
// cell, and returns to Idle. The workflow stays Armed if m fails.
func (w *Workflow) Complete(target string, m Mover) error {
	if w.state != Armed {
		return ErrNotArmed
	}
	if err := m.Move(w.source, w.moved, target); err != nil {
		return err
	}
	w.reset()
	return nil
}

// CompleteTyped is Complete for a typed target: it must be a well-formed
// cell ID other than the source. The move goes to the canonical key.
func (w *Workflow) CompleteTyped(input string, m Mover) error {
	if w.state != Armed {
		return ErrNotArmed
	}
	target, err := ValidateTarget(input, w.source)
	if err != nil {
		return err
	}
	return w.Complete(target, m)
}

// Cancel abandons any move without touching the data.
func (w *Workflow) Cancel() {
	w.reset()
}

// ValidateTarget checks a typed target cell against the source and returns
// it in canonical form, so "03-2" becomes "3-2".
func ValidateTarget(input, source string) (string, error) {
	target := strings.TrimSpace(input)
	if !targetPattern.MatchString(target) {
		return "", ErrBadTarget
	}
	c, err := shelf.ParseCellID(target)
	if err != nil {
		return "", ErrBadTarget
	}
	target = c.String()
	if src, err := shelf.ParseCellID(source); err == nil {
		source = src.String()
	}
	if target == source {
		return "", ErrSameCell
	}
	return target, nil
}

func (w *Workflow) reset() {
	w.state = Idle
	w.source = ""
	w.moved = nil
}
