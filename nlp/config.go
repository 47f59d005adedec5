// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nlp

import (
	"errors"
	"strings"
)

// Engine names accepted by Config.Engine.
const (
	EngineBasic  = "basic"
	EngineOpenAI = "openai"
)

// Config holds configuration for annotation engines.
type Config struct {
	// Engine selects the annotation engine: "basic" or "openai".
	Engine string

	// Host is the base URL for the tagging service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	Host string

	// Model is the model identifier to use for tagging.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// MaxTokensPerRequest bounds how many tokens are sent to the tagger in
	// one request. Longer documents are tagged in several requests, split at
	// sentence boundaries.
	// Default: 256
	MaxTokensPerRequest int

	// ParseAttempts is how many times a malformed tagger response is retried.
	// Default: 3
	ParseAttempts int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEngine sets the annotation engine.
func WithEngine(engine string) ConfigOption {
	return func(c *Config) {
		c.Engine = engine
	}
}

// WithHost sets the tagging service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the tagging model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxTokensPerRequest sets the per-request token budget.
func WithMaxTokensPerRequest(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokensPerRequest = n
	}
}

// WithParseAttempts sets how many times a malformed response is retried.
func WithParseAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.ParseAttempts = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Engine:              EngineBasic,
		Host:                "http://localhost:11434/v1",
		Model:               "qwen2.5:3b",
		MaxTokensPerRequest: 256,
		ParseAttempts:       3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//		WithEngine(EngineOpenAI),
//		WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Engine {
	case EngineBasic:
		return nil
	case EngineOpenAI:
	default:
		return errors.New("nlp config: Engine must be \"basic\" or \"openai\"")
	}

	if c.Host == "" {
		return errors.New("nlp config: Host is required")
	}
	if c.Model == "" {
		return errors.New("nlp config: Model is required")
	}
	if c.MaxTokensPerRequest < 1 {
		return errors.New("nlp config: MaxTokensPerRequest must be positive")
	}
	if c.ParseAttempts < 1 {
		return errors.New("nlp config: ParseAttempts must be at least 1")
	}
	return nil
}
