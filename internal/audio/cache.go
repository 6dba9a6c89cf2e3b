package audio

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores raw provider responses on disk so repeated requests,
// such as the same letter spelled across many words, skip the network.
type Cache struct {
	dir string
}

// NewCache creates the cache directory if needed and returns a Cache
// rooted there.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Get returns the cached response for a request, if present.
func (c *Cache) Get(provider string, req Request, ext string) ([]byte, bool) {
	data, err := os.ReadFile(c.filePath(provider, req, ext))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a raw provider response. Cache write failures are
// returned so callers can ignore them explicitly.
func (c *Cache) Put(provider string, req Request, ext string, data []byte) error {
	path := c.filePath(provider, req, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clear removes all cached responses.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// Stats returns the number of cached files and their total size.
func (c *Cache) Stats() (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return fileCount, totalSize, err
}

// filePath derives the on-disk location for a request. The first two
// hash characters become a subdirectory for better file system
// performance.
func (c *Cache) filePath(provider string, req Request, ext string) string {
	h := md5.New()
	h.Write([]byte(provider))
	h.Write([]byte(req.Text))
	h.Write([]byte(req.Language))
	h.Write([]byte(req.Rate.String()))
	if req.Letter {
		h.Write([]byte("letter"))
	}
	hash := hex.EncodeToString(h.Sum(nil))

	subdir := hash[:2]
	filename := fmt.Sprintf("%s.%s", hash[2:], ext)

	return filepath.Join(c.dir, subdir, filename)
}
