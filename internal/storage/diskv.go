package storage

import (
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/peterbourgon/diskv/v3"
)

type diskvBackend struct {
	d   *diskv.Diskv
	dir string
}

// OpenDiskv stores each key as a file directly under dir. Reads are not
// cached so writes from other processes are seen immediately.
func OpenDiskv(dir string) (Backend, error) {
	tmp := filepath.Join(dir, ".tmp")
	if err := util.EnsureDir(tmp); err != nil {
		return nil, fmt.Errorf("storage: ensure dir: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tmp,
		CacheSizeMax: 0,
		FilePerm:     0o600,
	})
	return &diskvBackend{d: d, dir: dir}, nil
}

func (b *diskvBackend) Get(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := b.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return val, nil
}

func (b *diskvBackend) Put(key string, value []byte) error {
	if err := b.d.Write(key, value); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (b *diskvBackend) Path() string {
	return filepath.Join(b.dir, Key)
}

func (b *diskvBackend) Close() error {
	return nil
}
