// Package store owns the in-memory shelf state. Every mutation goes through
// a named method, is persisted right away and may raise a short-lived flag on
// the affected cells.
package store

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"go.uber.org/zap"
)

// Default flag windows.
const (
	DefaultUpdatedWindow = 1500 * time.Millisecond
	DefaultDeletedWindow = 300 * time.Millisecond
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store: closed")

// Persister loads and saves the whole shelf document.
type Persister interface {
	Load() (shelf.Data, error)
	Save(shelf.Data) error
}

// Options configures a Store. Zero windows fall back to the defaults; a
// negative DeletedWindow removes cells immediately.
type Options struct {
	UpdatedWindow time.Duration
	DeletedWindow time.Duration
	Logger        *zap.Logger

	// OnChange runs after any change to the data or the cell flags.
	OnChange func()
	// OnError receives storage failures. It must not block.
	OnError func(error)
	// OnClose runs when a save or delete closes the active editor.
	OnClose func()
}

// Store is the single source of truth for shelf data. It is safe for
// concurrent use; hooks are always called without the lock held.
type Store struct {
	mu     sync.Mutex
	p      Persister
	opts   Options
	log    *zap.Logger
	data   shelf.Data
	active string
	closed bool

	updated map[string]flash
	deleted map[string]flash
	gen     uint64
}

// Open loads the persisted state. A load failure is reported through the
// returned error and OnError, and the store starts from the empty state the
// persister handed back; the store is usable either way.
func Open(p Persister, opts Options) (*Store, error) {
	if opts.UpdatedWindow == 0 {
		opts.UpdatedWindow = DefaultUpdatedWindow
	}
	if opts.DeletedWindow == 0 {
		opts.DeletedWindow = DefaultDeletedWindow
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		p:       p,
		opts:    opts,
		log:     log.Named("store"),
		updated: make(map[string]flash),
		deleted: make(map[string]flash),
	}

	d, err := p.Load()
	if d == nil {
		d = shelf.Data{}
	}
	s.data = d.Clone()
	if err != nil {
		s.log.Warn("starting with empty shelf", zap.Error(err))
		s.notifyError(err)
		return s, err
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() shelf.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Cell returns a copy of one cell's notebooks and whether the cell exists.
func (s *Store) Cell(id string) ([]shelf.Notebook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nbs, ok := s.data[id]
	if !ok {
		return nil, false
	}
	out := make([]shelf.Notebook, len(nbs))
	copy(out, nbs)
	return out, true
}

// Search returns the first cell, in grid order, holding barcode query.
func (s *Store) Search(query string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shelf.Search(s.data, query)
}

// ActiveCell is the cell whose editor is open, or "".
func (s *Store) ActiveCell() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveCell records which cell's editor is open. Pass "" when it closes.
func (s *Store) SetActiveCell(id string) {
	s.mu.Lock()
	s.active = id
	s.mu.Unlock()
}

// Save replaces a cell's notebooks with the non-blank entries of nbs and
// closes the active editor. A non-empty result flags the cell as updated.
// A pending delete of the same cell is cancelled.
func (s *Store) Save(id string, nbs []shelf.Notebook) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	kept := shelf.FilterBlank(nbs)
	s.data[id] = kept
	s.cancel(s.deleted, id)
	if len(kept) > 0 {
		s.flagUpdated(id)
	}
	closed := s.closeActive()
	err := s.persist("save")
	s.mu.Unlock()

	s.log.Debug("saved cell", zap.String("cell", id), zap.Int("notebooks", len(kept)))
	s.after(err, closed)
	return err
}

// Delete flags the cell as deleted, closes the active editor and removes
// the cell once the delete window ends.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	closed := s.closeActive()
	var err error
	if s.opts.DeletedWindow < 0 {
		s.remove(id)
		err = s.persist("delete")
	} else {
		s.gen++
		gen := s.gen
		s.cancel(s.deleted, id)
		s.deleted[id] = flash{
			gen:   gen,
			timer: time.AfterFunc(s.opts.DeletedWindow, func() { s.expireDeleted(id, gen) }),
		}
	}
	s.mu.Unlock()

	s.log.Debug("deleting cell", zap.String("cell", id))
	s.after(err, closed)
	return err
}

// Move takes moved out of source and appends it to target. Both cells are
// flagged as updated.
func (s *Store) Move(source string, moved []shelf.Notebook, target string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	s.data = shelf.Move(s.data, source, moved, target)
	s.cancel(s.deleted, source)
	s.cancel(s.deleted, target)
	s.flagUpdated(source)
	s.flagUpdated(target)
	err := s.persist("move")
	s.mu.Unlock()

	s.log.Debug("moved notebooks",
		zap.String("from", source), zap.String("to", target), zap.Int("notebooks", len(moved)))
	s.after(err, false)
	return err
}

// Import combines validated data with the current state.
func (s *Store) Import(incoming shelf.Data, mode shelf.ImportMode) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	s.data = shelf.Apply(s.data, incoming, mode)
	if mode == shelf.ModeReplace {
		s.cancelAll()
	} else {
		for id := range incoming {
			s.cancel(s.deleted, id)
		}
	}
	err := s.persist("import")
	s.mu.Unlock()

	s.log.Info("imported shelf data", zap.Stringer("mode", mode), zap.Int("cells", len(incoming)))
	s.after(err, false)
	return err
}

// Reset restores the single empty anchor cell.
func (s *Store) Reset() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	s.cancelAll()
	s.data = shelf.Seed()
	closed := s.closeActive()
	err := s.persist("reset")
	s.mu.Unlock()

	s.log.Info("reset shelf data")
	s.after(err, closed)
	return err
}

// Reload re-reads the persisted state, typically after another process
// wrote it. It reports whether the in-memory state changed. On failure the
// current state is kept.
func (s *Store) Reload() (bool, error) {
	d, err := s.p.Load()
	if err != nil {
		s.log.Warn("reload failed", zap.Error(err))
		s.notifyError(err)
		return false, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	if sameData(s.data, d) {
		s.mu.Unlock()
		return false, nil
	}
	s.data = d.Clone()
	s.mu.Unlock()

	s.log.Debug("reloaded shelf data", zap.Int("cells", len(d)))
	s.notifyChange()
	return true, nil
}

// Close stops all flag timers. Deletes still inside their window are applied
// and persisted before Close returns.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	pending := make([]string, 0, len(s.deleted))
	for id := range s.deleted {
		pending = append(pending, id)
	}
	s.cancelAll()
	var err error
	if len(pending) > 0 {
		for _, id := range pending {
			delete(s.data, id)
		}
		err = s.persist("delete")
	}
	s.mu.Unlock()

	if len(pending) > 0 {
		s.log.Debug("applied pending deletes", zap.Strings("cells", pending))
	}
	if err != nil {
		s.notifyError(err)
	}
	return err
}

// persist saves the current state. Callers hold s.mu.
func (s *Store) persist(op string) error {
	if err := s.p.Save(s.data.Clone()); err != nil {
		s.log.Warn("persist failed", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// remove deletes a cell and its flags. Callers hold s.mu.
func (s *Store) remove(id string) {
	delete(s.data, id)
	s.cancel(s.updated, id)
	s.cancel(s.deleted, id)
}

// closeActive clears the active cell. Callers hold s.mu.
func (s *Store) closeActive() bool {
	if s.active == "" {
		return false
	}
	s.active = ""
	return true
}

func (s *Store) after(err error, closed bool) {
	if closed && s.opts.OnClose != nil {
		s.opts.OnClose()
	}
	if err != nil {
		s.notifyError(err)
	}
	s.notifyChange()
}

func (s *Store) notifyChange() {
	if s.opts.OnChange != nil {
		s.opts.OnChange()
	}
}

func (s *Store) notifyError(err error) {
	if s.opts.OnError != nil {
		s.opts.OnError(err)
	}
}

func sameData(a, b shelf.Data) bool {
	ra, errA := shelf.Marshal(a)
	rb, errB := shelf.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}
