package carddb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fsutil"
)

// DefaultMaxAge is how long a downloaded card database stays fresh.
const DefaultMaxAge = 72 * time.Hour

// Feed is one remote card database snapshot and its local cache file.
type Feed struct {
	Name      string // Human-readable name for logs, e.g. "swu/sor"
	URL       string
	CacheFile string // File name inside the cache directory
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	CacheDir string
	MaxAge   time.Duration // Zero always refreshes
	Refresh  bool          // Force a download even when the cache is fresh
	Client   *Client
	Logger   *slog.Logger
	Now      func() time.Time
}

// Loader produces raw card records from cached or downloaded feeds plus
// local override files.
type Loader struct {
	cacheDir string
	maxAge   time.Duration
	refresh  bool
	client   *Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewLoader creates a new card database loader.
func NewLoader(options LoaderOptions) *Loader {
	if options.Client == nil {
		options.Client = NewClient(DefaultClientOptions())
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Loader{
		cacheDir: options.CacheDir,
		maxAge:   options.MaxAge,
		refresh:  options.Refresh,
		client:   options.Client,
		logger:   options.Logger,
		now:      options.Now,
	}
}

// Load returns the records of every feed in order, followed by the records
// of every override file. Overrides are appended, never merged by code.
func (l *Loader) Load(ctx context.Context, feeds []Feed, overrides []string) ([]Record, error) {
	var records []Record
	for _, feed := range feeds {
		raws, err := l.loadFeed(ctx, feed)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseRecords(raws)
		if err != nil {
			return nil, &CacheCorruptError{Path: l.cachePath(feed), Err: err}
		}
		records = append(records, parsed...)
	}

	for _, path := range overrides {
		extra, err := l.loadOverride(path)
		if err != nil {
			return nil, err
		}
		records = append(records, extra...)
	}

	l.logger.Debug("Card database loaded", "feeds", len(feeds), "overrides", len(overrides), "records", len(records))
	return records, nil
}

func (l *Loader) cachePath(feed Feed) string {
	return filepath.Join(l.cacheDir, feed.CacheFile)
}

// loadFeed returns the feed's card array, downloading it when the cache is
// missing or stale. A failed download falls back to a stale cache.
func (l *Loader) loadFeed(ctx context.Context, feed Feed) ([]json.RawMessage, error) {
	path := l.cachePath(feed)

	info, statErr := os.Stat(path)
	haveCache := statErr == nil
	if haveCache && l.isFresh(info.ModTime()) {
		l.logger.Debug("Using cached card database", "feed", feed.Name, "path", path)
		return readCache(path)
	}

	raws, err := l.download(ctx, feed, path)
	if err == nil {
		return raws, nil
	}
	if !haveCache {
		return nil, fmt.Errorf("failed to download %s card database: %w", feed.Name, err)
	}

	l.logger.Warn("Card database download failed, using stale cache",
		"feed", feed.Name,
		"path", path,
		"age", l.now().Sub(info.ModTime()).Round(time.Minute).String(),
		"error", err)
	return readCache(path)
}

func (l *Loader) isFresh(modTime time.Time) bool {
	if l.refresh || l.maxAge <= 0 {
		return false
	}
	return l.now().Sub(modTime) < l.maxAge
}

func (l *Loader) download(ctx context.Context, feed Feed, path string) ([]json.RawMessage, error) {
	l.logger.Info("Downloading card database", "feed", feed.Name, "url", feed.URL)

	body, err := l.client.Fetch(ctx, feed.URL)
	if err != nil {
		return nil, err
	}

	raws, err := extractCards(body)
	if err != nil {
		return nil, fmt.Errorf("unexpected response from %s: %w", feed.URL, err)
	}

	data, err := json.Marshal(raws)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write cache %s: %w", path, err)
	}

	l.logger.Info("Card database cached", "feed", feed.Name, "cards", len(raws), "path", path)
	return raws, nil
}

func readCache(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", path, err)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &CacheCorruptError{Path: path, Err: err}
	}
	return raws, nil
}

var errNoCardArray = errors.New("expected a JSON array or an object with a \"data\" or \"cards\" array")

// extractCards accepts a bare array or an envelope object.
func extractCards(body []byte) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err == nil {
		return raws, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "cards"} {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &raws); err == nil {
			return raws, nil
		}
	}
	return nil, errNoCardArray
}
