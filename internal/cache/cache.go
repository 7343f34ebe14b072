// Package cache tracks content hashes of watched timed-automata documents so
// `ntac watch` only re-parses and re-checks a .xta/.xml file when its bytes
// have actually changed since the last pass.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
)

// Cache persists the last-seen digest of every document watch has checked.
type Cache struct {
	Digests map[string]string `json:"digests"`
	path    string
}

// New creates an empty cache backed by cachePath.
func New(cachePath string) *Cache {
	return &Cache{
		Digests: make(map[string]string),
		path:    cachePath,
	}
}

// Load reads a cache from disk, or returns an empty one if cachePath doesn't
// exist yet (the first run of watch against a directory).
func Load(cachePath string) (*Cache, error) {
	c := New(cachePath)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.Digests); err != nil {
		return nil, fmt.Errorf("failed to parse cache: %w", err)
	}

	return c, nil
}

// Save writes the cache to disk, creating its parent directory if needed.
func (c *Cache) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.Digests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

// NeedsRecheck reports whether docPath's content has changed since the last
// time it was hashed, updating the stored digest as a side effect so the
// next call sees the new baseline. A document never seen before always
// needs a recheck.
func (c *Cache) NeedsRecheck(docPath string) (bool, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return true, err
	}

	digest := sha256.Sum256(data)
	current := hex.EncodeToString(digest[:])

	cached, exists := c.Digests[docPath]
	if !exists || cached != current {
		c.Digests[docPath] = current
		return true, nil
	}

	return false, nil
}

// UpdateDigest recomputes and stores docPath's hash without reporting
// whether it changed, for callers that already know a recheck ran.
func (c *Cache) UpdateDigest(docPath string) error {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(data)
	c.Digests[docPath] = hex.EncodeToString(digest[:])
	return nil
}

// Forget drops docPath's stored digest, so a later recheck treats it as
// never seen (used when a watched file is removed).
func (c *Cache) Forget(docPath string) {
	delete(c.Digests, docPath)
}

// Clear drops every stored digest.
func (c *Cache) Clear() {
	c.Digests = make(map[string]string)
}
