package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/shelfscribe/internal/util"
	"go.etcd.io/bbolt"
)

const (
	boltFile   = "shelfscribe.bolt"
	boltBucket = "shelfscribe"
)

type boltBackend struct {
	db   *bbolt.DB
	path string
}

// OpenBolt keeps records in a bbolt database under dir. bbolt holds an
// exclusive file lock, so a second process waits up to one second and then
// fails to open.
func OpenBolt(dir string) (Backend, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("storage: ensure dir: %w", err)
	}
	path := filepath.Join(dir, boltFile)
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create bucket: %w", err)
	}
	return &boltBackend{db: db, path: path}, nil
}

func (b *boltBackend) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if val == nil {
			return ErrNotFound
		}
		// val is only valid inside the transaction.
		out = append([]byte(nil), val...)
		return nil
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return out, nil
}

func (b *boltBackend) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (b *boltBackend) Path() string {
	return b.path
}

func (b *boltBackend) Close() error {
	return b.db.Close()
}
