// Package config loads the YAML configuration of an indexing run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/corpora/nlp"
)

// Config is the complete configuration of an indexing run.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Index    IndexConfig    `yaml:"index"`
	NLP      NLPConfig      `yaml:"nlp"`
	Progress ProgressConfig `yaml:"progress"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	LogLevel string         `yaml:"log_level"`
}

// CorpusConfig selects the documents to index.
type CorpusConfig struct {
	Kind   string `yaml:"kind"`
	Root   string `yaml:"root"`
	Suffix string `yaml:"suffix,omitempty"`
	Label  string `yaml:"label"`
}

// IndexConfig describes the target index and its storage fidelity.
type IndexConfig struct {
	Path             string `yaml:"path"`
	Append           bool   `yaml:"append"`
	BufferSizeMB     int    `yaml:"buffer_size_mb"`
	StorePostings    bool   `yaml:"store_postings"`
	StoreTermVectors bool   `yaml:"store_term_vectors"`
	Stoplist         string `yaml:"stoplist,omitempty"`
}

// NLPConfig configures document annotation.
type NLPConfig struct {
	Enabled             bool          `yaml:"enabled"`
	Engine              string        `yaml:"engine"`
	Host                string        `yaml:"host,omitempty"`
	Model               string        `yaml:"model,omitempty"`
	MaxTokensPerRequest int           `yaml:"max_tokens_per_request,omitempty"`
	ParseAttempts       int           `yaml:"parse_attempts,omitempty"`
	Workers             int           `yaml:"workers"`
	MaxAttempts         int           `yaml:"max_attempts"`
	RetryDelay          time.Duration `yaml:"retry_delay"`
}

// ProgressConfig controls progress reporting.
type ProgressConfig struct {
	ReportInterval int `yaml:"report_interval"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	nc := nlp.DefaultConfig()
	return &Config{
		Corpus: CorpusConfig{
			Kind:  "gigaword",
			Label: "gigaword",
		},
		Index: IndexConfig{
			BufferSizeMB: 64,
		},
		NLP: NLPConfig{
			Engine:              nc.Engine,
			Host:                nc.Host,
			Model:               nc.Model,
			MaxTokensPerRequest: nc.MaxTokensPerRequest,
			ParseAttempts:       nc.ParseAttempts,
			Workers:             1,
			MaxAttempts:         1,
			RetryDelay:          500 * time.Millisecond,
		},
		Progress: ProgressConfig{
			ReportInterval: 10000,
		},
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the configuration. It does not touch the filesystem.
func (c *Config) Validate() error {
	var errs []error
	if c.Corpus.Kind == "" {
		errs = append(errs, errors.New("corpus.kind is required"))
	}
	if c.Corpus.Root == "" {
		errs = append(errs, errors.New("corpus.root is required"))
	}
	if c.Index.Path == "" {
		errs = append(errs, errors.New("index.path is required"))
	}
	if c.Index.BufferSizeMB < 0 {
		errs = append(errs, errors.New("index.buffer_size_mb must not be negative"))
	}
	if c.NLP.Workers < 1 {
		errs = append(errs, errors.New("nlp.workers must be at least 1"))
	}
	if c.NLP.MaxAttempts < 1 {
		errs = append(errs, errors.New("nlp.max_attempts must be at least 1"))
	}
	if c.NLP.RetryDelay < 0 {
		errs = append(errs, errors.New("nlp.retry_delay must not be negative"))
	}
	if c.NLP.Enabled {
		if err := c.NLP.EngineConfig().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Progress.ReportInterval < 1 {
		errs = append(errs, errors.New("progress.report_interval must be positive"))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level must be one of %s", strings.Join(logLevels, ", ")))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// EngineConfig converts the annotation settings to an nlp.Config.
func (n NLPConfig) EngineConfig() *nlp.Config {
	return nlp.NewConfig(
		nlp.WithEngine(n.Engine),
		nlp.WithHost(n.Host),
		nlp.WithModel(n.Model),
		nlp.WithMaxTokensPerRequest(n.MaxTokensPerRequest),
		nlp.WithParseAttempts(n.ParseAttempts),
	)
}
