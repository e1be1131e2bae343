// Package config loads runtime configuration from a TOML file with
// environment variable overrides. A missing config file is not an
// error; defaults keep the server usable with nothing but a data
// directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment overrides. These win over the config file.
const (
	EnvDataDir  = "MEMORIA_DATA_DIR"
	EnvCacheDir = "MEMORIA_CACHE_DIR"
)

// Cache backends.
const (
	CacheBackendDisk   = "disk"
	CacheBackendSQLite = "sqlite"
)

// Config is the full runtime configuration.
type Config struct {
	DataDir      string `toml:"data_dir"`
	CacheDir     string `toml:"cache_dir"`
	CacheBackend string `toml:"cache_backend"`

	Embedding EmbeddingConfig `toml:"embedding"`
	Rerank    RerankConfig    `toml:"rerank"`
	Search    SearchConfig    `toml:"search"`
	Chunking  ChunkingConfig  `toml:"chunking"`
}

// EmbeddingConfig selects and tunes the embedding provider. An empty
// provider defers to environment-based detection.
type EmbeddingConfig struct {
	Provider          string  `toml:"provider"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// RerankConfig controls the relevance judge.
type RerankConfig struct {
	Enabled bool   `toml:"enabled"`
	Model   string `toml:"model"`
	TopN    int    `toml:"top_n"`
}

// SearchConfig tunes result shaping.
type SearchConfig struct {
	SnippetLength   int `toml:"snippet_length"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// ChunkingConfig tunes document splitting.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// Default returns the configuration used when no file exists. Paths are
// rooted under ~/.memoria.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".memoria")
	return Config{
		DataDir:      filepath.Join(base, "data"),
		CacheDir:     filepath.Join(base, "cache"),
		CacheBackend: CacheBackendDisk,
		Rerank: RerankConfig{
			Enabled: true,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".memoria", "config.toml")
	}
	return filepath.Join(home, ".memoria", "config.toml")
}

// Load reads the config file at path, layering it over defaults and
// applying environment overrides last. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case CacheBackendDisk, CacheBackendSQLite:
	case "":
		c.CacheBackend = CacheBackendDisk
	default:
		return fmt.Errorf("unknown cache_backend %q", c.CacheBackend)
	}
	if c.Chunking.Size < 0 || c.Chunking.Overlap < 0 {
		return fmt.Errorf("chunking size and overlap must be non-negative")
	}
	return nil
}
