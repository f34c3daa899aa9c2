package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppDirName is the per-user directory holding config, caches and the catalog.
const AppDirName = ".tcg-deck-companion"

// Environment variables that override file values.
const (
	EnvConfig      = "TCGDC_CONFIG"
	EnvCacheDir    = "TCGDC_CACHE_DIR"
	EnvMaxAge      = "TCGDC_MAX_AGE"
	EnvDefaultFace = "TCGDC_DEFAULT_FACE"
	EnvDBPath      = "TCGDC_DB_PATH"
)

// Config represents the application configuration.
type Config struct {
	// Card database cache
	Cache CacheConfig `toml:"cache"`

	// Card resolution
	Cards CardsConfig `toml:"cards"`

	// Proxy plan and image cache
	Proxy ProxyConfig `toml:"proxy"`

	// Pack catalog database
	Catalog CatalogConfig `toml:"catalog"`

	// Deck file watching
	Watch WatchConfig `toml:"watch"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CacheConfig contains card database cache settings.
type CacheConfig struct {
	Dir    string `toml:"dir"`     // Directory for downloaded card databases
	MaxAge string `toml:"max_age"` // Refresh after this age (e.g., "72h")
}

// CardsConfig contains card resolution settings.
type CardsConfig struct {
	DefaultFace     string   `toml:"default_face"`     // "a", "b" or "" for bare Marvel codes
	MarvelOverrides []string `toml:"marvel_overrides"` // Local override files merged over MarvelCDB
	SWUOverrides    []string `toml:"swu_overrides"`    // Local override files merged over SWU-DB
	SWUSets         []string `toml:"swu_sets"`         // Star Wars: Unlimited sets to load
}

// ProxyConfig contains proxy plan settings.
type ProxyConfig struct {
	ImageDir     string `toml:"image_dir"`      // Image cache directory
	ImageCacheMB int    `toml:"image_cache_mb"` // Image cache size limit (0 = unlimited)
	CardsPerPage int    `toml:"cards_per_page"` // Slots per printed page
}

// CatalogConfig contains pack catalog settings.
type CatalogConfig struct {
	DBPath string `toml:"db_path"` // SQLite database path
}

// WatchConfig contains deck watching settings.
type WatchConfig struct {
	Debounce     string `toml:"debounce"`      // Quiet period before re-resolving (e.g., "200ms")
	PollInterval string `toml:"poll_interval"` // Backup polling interval (e.g., "2s")
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	base := appDir()
	return &Config{
		Cache: CacheConfig{
			Dir:    filepath.Join(base, "cache"),
			MaxAge: "72h",
		},
		Cards: CardsConfig{
			DefaultFace: "a",
			SWUSets:     []string{"SOR", "SHD", "TWI", "JTL", "LOF"},
		},
		Proxy: ProxyConfig{
			ImageDir:     filepath.Join(base, "images"),
			ImageCacheMB: 500,
			CardsPerPage: 9,
		},
		Catalog: CatalogConfig{
			DBPath: filepath.Join(base, "catalog.db"),
		},
		Watch: WatchConfig{
			Debounce:     "200ms",
			PollInterval: "2s",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

func appDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(homeDir, AppDirName)
}

// Path returns the configuration file path, honoring TCGDC_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(appDir(), "config.toml")
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads the configuration from path. Missing keys keep their
// defaults and a missing file yields the default config. An optional .env
// in the working directory is read first, then environment overrides are
// applied.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	config.ApplyEnv()
	return config, nil
}

// loadDotEnv loads path into the environment if it exists. Variables
// already set are not overwritten.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from TCGDC_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvMaxAge); v != "" {
		c.Cache.MaxAge = v
	}
	if v, ok := os.LookupEnv(EnvDefaultFace); ok {
		c.Cards.DefaultFace = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Catalog.DBPath = v
	}
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache dir cannot be empty")
	}
	if _, err := time.ParseDuration(c.Cache.MaxAge); err != nil {
		return fmt.Errorf("invalid cache max age %q: %w", c.Cache.MaxAge, err)
	}

	switch c.Cards.DefaultFace {
	case "", "a", "b":
	default:
		return fmt.Errorf("invalid default face %q: must be a, b or empty", c.Cards.DefaultFace)
	}

	if c.Proxy.ImageCacheMB < 0 {
		return fmt.Errorf("image cache size cannot be negative: %d", c.Proxy.ImageCacheMB)
	}
	if c.Proxy.CardsPerPage < 1 {
		return fmt.Errorf("cards per page must be at least 1: %d", c.Proxy.CardsPerPage)
	}

	if c.Catalog.DBPath == "" {
		return fmt.Errorf("catalog db path cannot be empty")
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	if _, err := time.ParseDuration(c.Watch.PollInterval); err != nil {
		return fmt.Errorf("invalid watch poll interval %q: %w", c.Watch.PollInterval, err)
	}

	return nil
}

// GetCacheMaxAge returns the card database max age as a duration.
func (c *Config) GetCacheMaxAge() (time.Duration, error) {
	return time.ParseDuration(c.Cache.MaxAge)
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}

// GetWatchPollInterval returns the watch poll interval as a duration.
func (c *Config) GetWatchPollInterval() (time.Duration, error) {
	return time.ParseDuration(c.Watch.PollInterval)
}

// ImageCacheBytes returns the image cache size limit in bytes.
func (c *Config) ImageCacheBytes() int64 {
	return int64(c.Proxy.ImageCacheMB) * 1024 * 1024
}
