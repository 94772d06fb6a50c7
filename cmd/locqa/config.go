package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/build"
	locqahttp "github.com/fwojciec/locqa/http"
	"gopkg.in/yaml.v3"
)

// Model providers.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config is the runtime configuration loaded from YAML and the environment.
type Config struct {
	DB       string       `yaml:"db"`
	Dataset  string       `yaml:"dataset"`
	Metric   locqa.Metric `yaml:"metric"`
	Model    ModelConfig  `yaml:"model"`
	Build    BuildConfig  `yaml:"build"`
	Server   ServerConfig `yaml:"server"`
	Examples []string     `yaml:"examples"`
}

// ModelConfig selects the embedding and answer models.
type ModelConfig struct {
	Provider  string `yaml:"provider"`
	Embedding string `yaml:"embedding"`
	Answer    string `yaml:"answer"`
	OllamaURL string `yaml:"ollama_url"`
}

// BuildConfig tunes store construction.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency"`

	// Rate is the maximum number of embedding calls per second; 0 is unlimited.
	Rate   float64 `yaml:"rate"`
	Dedupe bool    `yaml:"dedupe"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file overrides it.
// Paths are rooted at dir, normally ~/.locqa.
func DefaultConfig(dir string) *Config {
	return &Config{
		DB:     filepath.Join(dir, "locqa.db"),
		Metric: locqa.MetricEuclidean,
		Model:  ModelConfig{Provider: ProviderGemini},
		Build:  BuildConfig{Concurrency: build.DefaultConcurrency},
		Server: ServerConfig{Addr: locqahttp.DefaultAddr},
	}
}

// LoadConfig layers defaults, the config file and environment overrides, then
// validates the result. An explicit path, from the flag or LOCQA_CONFIG, must
// exist; the default ~/.locqa/config.yaml is optional.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	dir := configDir()
	cfg := DefaultConfig(dir)

	explicit := true
	if path == "" {
		path = getenv("LOCQA_CONFIG")
	}
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
		explicit = false
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return nil, locqa.Errorf(locqa.ENOTFOUND, "config file %q not found", path)
	case err != nil:
		return nil, err
	default:
		if err := decodeConfig(data, cfg); err != nil {
			return nil, locqa.Errorf(locqa.EINVALID, "invalid config file %q: %v", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("LOCQA_DB"); v != "" {
		c.DB = v
	}
	if v := getenv("LOCQA_DATASET"); v != "" {
		c.Dataset = v
	}
	if v := getenv("LOCQA_PROVIDER"); v != "" {
		c.Model.Provider = v
	}
	if v := getenv("LOCQA_METRIC"); v != "" {
		c.Metric = locqa.Metric(v)
	}
	if v := getenv("LOCQA_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return locqa.Errorf(locqa.EINVALID, "invalid LOCQA_CONCURRENCY %q", v)
		}
		c.Build.Concurrency = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DB == "" {
		return locqa.Errorf(locqa.EINVALID, "db path required")
	}
	if err := c.Metric.Validate(); err != nil {
		return err
	}
	switch c.Model.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return locqa.Errorf(locqa.EINVALID, "unknown model provider %q", c.Model.Provider)
	}
	if c.Build.Concurrency < 1 {
		return locqa.Errorf(locqa.EINVALID, "build concurrency must be at least 1")
	}
	if c.Build.Rate < 0 {
		return locqa.Errorf(locqa.EINVALID, "build rate must not be negative")
	}
	return nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".locqa"
	}
	return filepath.Join(home, ".locqa")
}
