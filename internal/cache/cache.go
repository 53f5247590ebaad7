// Package cache persists per-file documentation coverage so repeated status
// runs skip re-parsing unchanged files. Entries are keyed by the content
// digest: any edit changes the key and the stale entry is simply never read
// again.
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the Coverage format changes.
const schemaVersion uint16 = 1

// Digest is a sha256 content hash, the cache key.
type Digest = [32]byte

// Coverage is one file's documentation tally.
type Coverage struct {
	Schema uint16

	Path       string
	Documented int
	Total      int

	// Per-group tallies, indexed the way the element filter groups
	// declarations: classes, methods, fields.
	ClassDocumented  int
	ClassTotal       int
	MethodDocumented int
	MethodTotal      int
	FieldDocumented  int
	FieldTotal       int
}

// DiskCache stores coverage payloads under the user cache directory.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the disk cache at the standard XDG location.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenAt initializes the cache at an explicit directory.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "coverage", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a coverage entry. The write goes through a temp
// file and a rename so readers never observe a partial entry.
func (c *DiskCache) Put(key Digest, cov *Coverage) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cov.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(cov); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a coverage entry. A missing entry, or one written by a
// different schema, reports false without an error.
func (c *DiskCache) Get(key Digest, out *Coverage) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "coverage"))
}
