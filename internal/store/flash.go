package store

import (
	"time"

	"go.uber.org/zap"
)

// flash is a pending flag expiry. gen identifies the timer that owns the
// entry so a callback that lost the race with cancel does nothing.
type flash struct {
	gen   uint64
	timer *time.Timer
}

// IsUpdated reports whether the cell is inside its "recently updated" window.
func (s *Store) IsUpdated(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.updated[id]
	return ok
}

// IsDeleted reports whether the cell is waiting to be removed.
func (s *Store) IsDeleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleted[id]
	return ok
}

// flagUpdated starts, or restarts, the updated window for id. Callers hold s.mu.
func (s *Store) flagUpdated(id string) {
	s.cancel(s.updated, id)
	s.gen++
	gen := s.gen
	s.updated[id] = flash{
		gen:   gen,
		timer: time.AfterFunc(s.opts.UpdatedWindow, func() { s.expireUpdated(id, gen) }),
	}
}

func (s *Store) expireUpdated(id string, gen uint64) {
	s.mu.Lock()
	f, ok := s.updated[id]
	if !ok || f.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.updated, id)
	s.mu.Unlock()

	s.notifyChange()
}

func (s *Store) expireDeleted(id string, gen uint64) {
	s.mu.Lock()
	f, ok := s.deleted[id]
	if !ok || f.gen != gen {
		s.mu.Unlock()
		return
	}
	s.remove(id)
	err := s.persist("delete")
	s.mu.Unlock()

	s.log.Debug("removed cell", zap.String("cell", id))
	if err != nil {
		s.notifyError(err)
	}
	s.notifyChange()
}

// cancel stops and forgets the timer for id. Callers hold s.mu.
func (s *Store) cancel(m map[string]flash, id string) {
	if f, ok := m[id]; ok {
		f.timer.Stop()
		delete(m, id)
	}
}

// cancelAll stops every pending timer. Callers hold s.mu.
func (s *Store) cancelAll() {
	for id := range s.updated {
		s.cancel(s.updated, id)
	}
	for id := range s.deleted {
		s.cancel(s.deleted, id)
	}
}
