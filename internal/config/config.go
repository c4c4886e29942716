package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pdfsearch/internal/domain"
)

// SourceConfig is one corpus directory entry, persisted across runs.
type SourceConfig struct {
	Path   string `yaml:"path"`
	Label  string `yaml:"label,omitempty"`
	Active bool   `yaml:"active"`
}

// SearchConfig holds retrieval parameters and the startup defaults for
// method and reranker selection.
type SearchConfig struct {
	MaxResults int     `yaml:"max_results"`
	K1         float64 `yaml:"k1"`
	B          float64 `yaml:"b"`
	Method     string  `yaml:"method"`
	Rerank     string  `yaml:"rerank"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible
// embeddings endpoint.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedding provider.
// Type "none" leaves vector retrieval disabled.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// CrossEncoderConfig configures the external rerank service. An empty
// base URL leaves cross-encoder reranking disabled.
type CrossEncoderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Sources      []SourceConfig     `yaml:"sources"`
	Search       SearchConfig       `yaml:"search"`
	Embedder     EmbedderConfig     `yaml:"embedder"`
	CrossEncoder CrossEncoderConfig `yaml:"cross_encoder"`
}

// DomainSources converts the persisted source entries into the core's
// caller-supplied source list.
func (c *AppConfig) DomainSources() []domain.Source {
	out := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, domain.Source{Path: s.Path, Label: s.Label, Active: s.Active})
	}
	return out
}

// Load reads a config from a specified path. If the file does not
// exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/pdfsearch/config.yaml. If neither exists, it writes
// defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as
// needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pdfsearch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Search:   SearchConfig{MaxResults: 50, K1: 1.5, B: 0.75, Method: "bm25", Rerank: "none"},
		Embedder: EmbedderConfig{Type: "none"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 50
	}
	if cfg.Search.K1 == 0 {
		cfg.Search.K1 = 1.5
	}
	if cfg.Search.B == 0 {
		cfg.Search.B = 0.75
	}
	if cfg.Search.Method == "" {
		cfg.Search.Method = "bm25"
	}
	if cfg.Search.Rerank == "" {
		cfg.Search.Rerank = "none"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "none"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "nomic-embed-text-v1"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.CrossEncoder.BaseURL != "" {
		if cfg.CrossEncoder.Model == "" {
			cfg.CrossEncoder.Model = "ms-marco-MiniLM-L-6-v2"
		}
		if cfg.CrossEncoder.TimeoutSecs == 0 {
			cfg.CrossEncoder.TimeoutSecs = 30
		}
	}
}
