// Package models defines data structures for configuration and ingestion.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CounterConfig holds the knobs that size the ingestion pipeline.
type CounterConfig struct {
	NumOfWorkers   int `yaml:"num_of_workers"`
	NumOfChunks    int `yaml:"num_of_chunks"`
	FilesChunkSize int `yaml:"files_chunk_size"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// FetchConfig controls URL retrieval. A zero CacheTTL disables the body cache.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	CacheDir  string        `yaml:"cache_dir"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Counter        CounterConfig  `yaml:"words_counter_helper"`
	Database       DatabaseConfig `yaml:"database"`
	Server         ServerConfig   `yaml:"server"`
	Fetch          FetchConfig    `yaml:"fetch"`
	IngestTimeout  time.Duration  `yaml:"ingest_timeout"`
	DetectLanguage bool           `yaml:"detect_language"`
}

const (
	DefaultWorkers        = 5
	DefaultChunks         = 5
	DefaultFilesChunkSize = 10 * 1024 * 1024
	DefaultDBName         = "words_counter.db"
)

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Counter: CounterConfig{
			NumOfWorkers:   DefaultWorkers,
			NumOfChunks:    DefaultChunks,
			FilesChunkSize: DefaultFilesChunkSize,
		},
		Database: DatabaseConfig{Path: DefaultDBName},
		Server: ServerConfig{
			Addr:         ":8000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			UserAgent: "wordcount/1.0",
		},
		IngestTimeout:  60 * time.Second,
		DetectLanguage: true,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every sizing knob is at least 1.
func (c *Config) Validate() error {
	if c.Counter.NumOfWorkers < 1 {
		return fmt.Errorf("num_of_workers must be >= 1, got %d", c.Counter.NumOfWorkers)
	}
	if c.Counter.NumOfChunks < 1 {
		return fmt.Errorf("num_of_chunks must be >= 1, got %d", c.Counter.NumOfChunks)
	}
	if c.Counter.FilesChunkSize < 1 {
		return fmt.Errorf("files_chunk_size must be >= 1, got %d", c.Counter.FilesChunkSize)
	}
	if c.IngestTimeout < 0 {
		return fmt.Errorf("ingest_timeout must not be negative")
	}
	return nil
}
