package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, EngineBasic, cfg.Engine)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 256, cfg.MaxTokensPerRequest)
	assert.Equal(t, 3, cfg.ParseAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEngine(EngineOpenAI),
			WithHost("http://custom:8080/v1"),
			WithModel("gpt-4o-mini"),
			WithMaxTokensPerRequest(64),
			WithParseAttempts(5),
		)

		assert.Equal(t, EngineOpenAI, cfg.Engine)
		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, 64, cfg.MaxTokensPerRequest)
		assert.Equal(t, 5, cfg.ParseAttempts)
	})
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Engine: " OpenAI ", Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
			assert.Equal(t, EngineOpenAI, cfg.Engine)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr string
	}{
		{"basic ignores host", []ConfigOption{WithHost("")}, ""},
		{"valid openai", []ConfigOption{WithEngine(EngineOpenAI)}, ""},
		{"unknown engine", []ConfigOption{WithEngine("corenlp")}, "Engine"},
		{"missing host", []ConfigOption{WithEngine(EngineOpenAI), WithHost("")}, "Host is required"},
		{"missing model", []ConfigOption{WithEngine(EngineOpenAI), WithModel("")}, "Model is required"},
		{"zero token budget", []ConfigOption{WithEngine(EngineOpenAI), WithMaxTokensPerRequest(0)}, "MaxTokensPerRequest"},
		{"zero attempts", []ConfigOption{WithEngine(EngineOpenAI), WithParseAttempts(0)}, "ParseAttempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
