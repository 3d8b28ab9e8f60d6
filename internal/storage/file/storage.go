// Package file stores tab values as files in a directory. The CLI uses it
// so one shell session keeps its login across invocations.
package file

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/storage"
)

// DefaultTTL matches the redis tab TTL
const DefaultTTL = 12 * time.Hour

// Storage keeps one file per key under dir. A value expires ttl after its
// last write; expired files are removed on read.
type Storage struct {
	dir   string
	clock clock.Clock
	ttl   time.Duration
}

// New creates a file storage rooted at dir. The directory is created on
// first write. A zero ttl means DefaultTTL.
func New(dir string, clk clock.Clock, ttl time.Duration) *Storage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Storage{dir: dir, clock: clk, ttl: ttl}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dir returns the storage directory
func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if s.clock.Now().Sub(info.ModTime()) > s.ttl {
		_ = os.Remove(path)
		return nil, storage.ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	// Readers see either the old value or the new one, never a partial write
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	// the write time is the clock's, so expiry follows the same clock
	now := s.clock.Now()
	if err := os.Chtimes(tmp.Name(), now, now); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}
