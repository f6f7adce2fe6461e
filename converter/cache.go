package converter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// HashCacheFile is the file name used for the conversion cache next to the maps.
const HashCacheFile = ".summit-hashes.json"

// IsHashCache reports whether path names a conversion cache rather than a map.
func IsHashCache(path string) bool {
	return filepath.Base(path) == HashCacheFile
}

// HashCache remembers the content hash of every document at its last
// successful conversion.
type HashCache struct {
	path   string
	Hashes map[string]string `json:"hashes"`
}

// LoadHashCache reads the cache at path. A missing or invalid cache is
// treated as empty.
func LoadHashCache(path string) *HashCache {
	cache := &HashCache{path: path, Hashes: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, cache); err != nil || cache.Hashes == nil {
		cache.Hashes = make(map[string]string)
	}
	return cache
}

// Save writes the cache back to disk.
func (c *HashCache) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Changed reports whether path differs from its last recorded hash, and
// returns the current hash.
func (c *HashCache) Changed(path string) (bool, string, error) {
	hash, err := hashFile(path)
	if err != nil {
		return false, "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return c.Hashes[cacheKey(path)] != hash, hash, nil
}

// Record stores hash as the converted state of path.
func (c *HashCache) Record(path, hash string) {
	c.Hashes[cacheKey(path)] = hash
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Cached skips conversions of documents whose content has not changed since
// their last conversion and whose binary still exists.
type Cached struct {
	Next  Converter
	Cache *HashCache
}

// Convert implements Converter.
func (c *Cached) Convert(ctx context.Context, jsonPath string) error {
	changed, hash, err := c.Cache.Changed(jsonPath)
	if err != nil {
		return err
	}
	if !changed {
		if _, err := os.Stat(BinPath(jsonPath)); err == nil {
			fmt.Printf("%s is up to date\n", filepath.Base(jsonPath))
			return nil
		}
	}

	if err := c.Next.Convert(ctx, jsonPath); err != nil {
		return err
	}

	c.Cache.Record(jsonPath, hash)
	if err := c.Cache.Save(); err != nil {
		fmt.Printf("Warning: Failed to save hash cache: %v\n", err)
	}
	return nil
}
