// Package assetcache keeps the application shell and third-party
// assets available offline. A versioned disk cache holds full HTTP
// responses; a Worker with an install/activate lifecycle decides when
// to serve from cache and when to go to the network.
package assetcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Entry is a cached HTTP response, stored one file per URL.
type Entry struct {
	URL      string      `json:"url"`
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"storedAt"`
}

// Store manages named caches under a single root directory. Each cache
// name corresponds to one shell version; retiring a version means
// deleting its directory.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Names lists every cache currently on disk.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list caches: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Open returns the named cache, creating its directory if needed.
func (s *Store) Open(name string) (*Cache, error) {
	dir := filepath.Join(s.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache %s: %w", name, err)
	}
	return &Cache{name: name, dir: dir}, nil
}

// Delete removes the named cache and everything in it.
func (s *Store) Delete(name string) error {
	return os.RemoveAll(filepath.Join(s.root, name))
}

// Cache is one named, versioned set of cached responses.
type Cache struct {
	name string
	dir  string
}

func (c *Cache) Name() string {
	return c.name
}

func entryKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Match returns the cached entry for url, or nil on a miss.
func (c *Cache) Match(url string) (*Entry, error) {
	raw, err := os.ReadFile(filepath.Join(c.dir, entryKey(url)))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores an entry, replacing any previous response for the same URL.
func (c *Cache) Put(entry *Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	path := filepath.Join(c.dir, entryKey(entry.URL))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace cache entry: %w", err)
	}
	return nil
}
