package storage

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"go.uber.org/zap"
)

// StorageError reports a failed load or save. It is never fatal: callers
// keep working with their in-memory state.
type StorageError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("could not %s shelf data: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Adapter reads and writes the shelf document through a Backend.
type Adapter struct {
	backend Backend
	log     *zap.Logger
}

// NewAdapter wraps backend. A nil logger discards log output.
func NewAdapter(backend Backend, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{backend: backend, log: log}
}

// Backend returns the underlying key/value store.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Load returns the stored document. A missing record yields the seed state.
// An unreadable or unparsable record yields an empty state and a
// *StorageError.
func (a *Adapter) Load() (shelf.Data, error) {
	raw, err := a.backend.Get(Key)
	if errors.Is(err, ErrNotFound) {
		a.log.Debug("no stored shelf data, seeding anchor cell")
		return shelf.Seed(), nil
	}
	if err != nil {
		a.log.Warn("loading shelf data failed", zap.Error(err))
		return shelf.Data{}, &StorageError{Op: "load", Err: err}
	}

	d, err := shelf.Decode(raw)
	if err != nil {
		a.log.Warn("stored shelf data is corrupt", zap.Error(err), zap.Int("bytes", len(raw)))
		return shelf.Data{}, &StorageError{Op: "load", Err: err}
	}
	a.log.Debug("loaded shelf data", zap.Int("cells", len(d)), zap.Int("notebooks", d.Count()))
	return d, nil
}

// Save writes the whole document.
func (a *Adapter) Save(d shelf.Data) error {
	raw, err := shelf.Marshal(d)
	if err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	if err := a.backend.Put(Key, raw); err != nil {
		a.log.Warn("saving shelf data failed", zap.Error(err))
		return &StorageError{Op: "save", Err: err}
	}
	a.log.Debug("saved shelf data", zap.Int("cells", len(d)), zap.Int("bytes", len(raw)))
	return nil
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.backend.Close()
}
