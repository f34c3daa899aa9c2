// Package imagecache keeps a size-bounded on-disk cache of card images.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fsutil"
)

// Fetcher downloads a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Cache manages local caching of card images.
type Cache struct {
	cacheDir string
	maxSize  int64 // Maximum cache size in bytes
	fetcher  Fetcher
	now      func() time.Time

	mu       sync.Mutex
	sizes    map[string]int64     // Map of file path to file size
	lastUsed map[string]time.Time // LRU tracking
}

// CacheOptions configures the image cache.
type CacheOptions struct {
	CacheDir string // Directory to store cached images
	MaxSize  int64  // Maximum cache size in bytes (0 = unlimited)
}

// DefaultCacheOptions returns sensible default cache options.
func DefaultCacheOptions() CacheOptions {
	homeDir, _ := os.UserHomeDir()
	return CacheOptions{
		CacheDir: filepath.Join(homeDir, ".tcg-deck-companion", "images"),
		MaxSize:  500 * 1024 * 1024, // 500 MB default
	}
}

// NewCache creates an image cache that downloads through fetcher.
func NewCache(options CacheOptions, fetcher Fetcher) (*Cache, error) {
	if err := os.MkdirAll(options.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		cacheDir: options.CacheDir,
		maxSize:  options.MaxSize,
		fetcher:  fetcher,
		now:      time.Now,
		sizes:    make(map[string]int64),
		lastUsed: make(map[string]time.Time),
	}

	if err := cache.scan(); err != nil {
		return nil, fmt.Errorf("failed to scan cache directory: %w", err)
	}
	return cache, nil
}

// Localize returns a local path for an image reference. Local paths are
// returned unchanged; http(s) URLs are served from the cache, downloading
// them on a miss.
func (c *Cache) Localize(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("image URL is empty")
	}
	if !isRemote(ref) {
		return ref, nil
	}

	cachePath := filepath.Join(c.cacheDir, cacheKey(ref))

	c.mu.Lock()
	if _, exists := c.sizes[cachePath]; exists {
		c.lastUsed[cachePath] = c.now()
		c.mu.Unlock()
		return cachePath, nil
	}
	c.mu.Unlock()

	return c.downloadAndCache(ctx, ref, cachePath)
}

func (c *Cache) downloadAndCache(ctx context.Context, imageURL, cachePath string) (string, error) {
	data, err := c.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image %s: %w", imageURL, err)
	}
	size := int64(len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSpace(size); err != nil {
		return "", fmt.Errorf("failed to ensure cache space: %w", err)
	}
	if err := fsutil.WriteFileAtomic(cachePath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	c.sizes[cachePath] = size
	c.lastUsed[cachePath] = c.now()
	return cachePath, nil
}

// ensureSpace evicts least recently used files until neededSize fits.
// Must be called with c.mu locked.
func (c *Cache) ensureSpace(neededSize int64) error {
	if c.maxSize == 0 {
		return nil
	}

	var currentSize int64
	for _, size := range c.sizes {
		currentSize += size
	}
	if currentSize+neededSize <= c.maxSize {
		return nil
	}

	paths := make([]string, 0, len(c.sizes))
	for p := range c.sizes {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		return c.lastUsed[paths[i]].Before(c.lastUsed[paths[j]])
	})

	for _, p := range paths {
		if currentSize+neededSize <= c.maxSize {
			break
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to evict cached file: %w", err)
		}
		currentSize -= c.sizes[p]
		delete(c.sizes, p)
		delete(c.lastUsed, p)
	}
	return nil
}

// Clear removes all cached images.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for p := range c.sizes {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cached file: %w", err)
		}
	}
	c.sizes = make(map[string]int64)
	c.lastUsed = make(map[string]time.Time)
	return nil
}

// CacheStats contains statistics about the cache.
type CacheStats struct {
	TotalFiles int
	TotalSize  int64
	MaxSize    int64
	CacheDir   string
}

// Stats returns statistics about the cache.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totalSize int64
	for _, size := range c.sizes {
		totalSize += size
	}
	return CacheStats{
		TotalFiles: len(c.sizes),
		TotalSize:  totalSize,
		MaxSize:    c.maxSize,
		CacheDir:   c.cacheDir,
	}
}

// scan loads metadata for images already on disk.
func (c *Cache) scan() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		p := filepath.Join(c.cacheDir, entry.Name())
		c.sizes[p] = info.Size()
		c.lastUsed[p] = info.ModTime()
	}
	return nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// cacheKey hashes the URL and keeps its image extension.
func cacheKey(imageURL string) string {
	hash := sha256.Sum256([]byte(imageURL))
	ext := ".img"
	if u, err := url.Parse(imageURL); err == nil {
		switch e := strings.ToLower(path.Ext(u.Path)); e {
		case ".png", ".jpg", ".jpeg", ".webp", ".gif":
			ext = e
		}
	}
	return hex.EncodeToString(hash[:]) + ext
}
