package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration, stored as TOML at
// ~/.ragtube/config.toml. Zero values fall back to the defaults applied
// in Load.
type Config struct {
	Captions  CaptionsConfig  `toml:"captions"`
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Server    ServerConfig    `toml:"server"`

	path string `toml:"-"`
}

// CaptionsConfig locates the caption archive.
type CaptionsConfig struct {
	// Dir holds cleaned caption files plus videos.json and
	// playlists.json sidecars.
	Dir string `toml:"dir"`
}

// StorageConfig locates the chunk database.
type StorageConfig struct {
	// DataDir holds the SQLite database (default: ~/.ragtube/data).
	DataDir string `toml:"data_dir"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama" (default: openai).
	Provider string `toml:"provider"`
	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`
	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`
	// APIKey authenticates to the provider. The OPENAI_API_KEY
	// environment variable takes precedence when set.
	APIKey string `toml:"api_key"`
	// Dimensions overrides the model's default vector size.
	Dimensions int `toml:"dimensions"`
}

// LLMConfig configures answer generation.
type LLMConfig struct {
	// Model overrides the default chat model.
	Model string `toml:"model"`
	// BaseURL overrides the default endpoint.
	BaseURL string `toml:"base_url"`
	// APIKey authenticates to the provider. The OPENAI_API_KEY
	// environment variable takes precedence when set.
	APIKey string `toml:"api_key"`
}

// ChunkingConfig tunes the ingestion chunker.
type ChunkingConfig struct {
	// Size is the chunk size in characters (default: 1000).
	Size int `toml:"size"`
	// Overlap is the overlap between chunks in characters (default: 200).
	Overlap int `toml:"overlap"`
}

// RetrievalConfig tunes query-time search.
type RetrievalConfig struct {
	// OverFetch multiplies the candidate count requested from the index
	// when filters are active (default: 3).
	OverFetch int `toml:"over_fetch"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default: localhost:8080).
	Addr string `toml:"addr"`
}

// Default configuration values.
const (
	DefaultEmbeddingProvider = "openai"
	DefaultChunkSize         = 1000
	DefaultChunkOverlap      = 200
	DefaultOverFetch         = 3
	DefaultServerAddr        = "localhost:8080"
)

// Load reads configuration from configDir/config.toml, applying defaults
// for unset fields. If configDir is empty, defaults to ~/.ragtube.
// A missing file is not an error: defaults are returned and a later Save
// creates it.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".ragtube")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg := &Config{
		path: filepath.Join(configDir, "config.toml"),
	}

	data, err := os.ReadFile(cfg.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save persists the configuration to disk with restricted permissions.
func (c *Config) Save() error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) applyDefaults() {
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = DefaultEmbeddingProvider
	}
	if c.Chunking.Size == 0 {
		c.Chunking.Size = DefaultChunkSize
	}
	if c.Chunking.Overlap == 0 {
		c.Chunking.Overlap = DefaultChunkOverlap
	}
	if c.Retrieval.OverFetch == 0 {
		c.Retrieval.OverFetch = DefaultOverFetch
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}

	// Environment wins over the file for secrets.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Embedding.APIKey = key
		c.LLM.APIKey = key
	}
}
