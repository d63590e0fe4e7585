// Package storage persists the shelf document in a local key/value backend.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Key is the record the shelf document is stored under.
const Key = "shelfData"

// ErrNotFound is returned by Backend.Get for keys that were never written.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a minimal key/value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// Path is the file holding the data; the watcher filters events by it.
	Path() string
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindDiskv  = "diskv"
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
)

// Kinds lists the supported backend names.
func Kinds() []string {
	return []string{KindDiskv, KindSQLite, KindBolt}
}

// Open creates the backend of the given kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", KindDiskv:
		return OpenDiskv(dir)
	case KindSQLite:
		return OpenSQLite(dir)
	case KindBolt:
		return OpenBolt(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of %s)", kind, strings.Join(Kinds(), ", "))
	}
}
