package openai

import (
	"log/slog"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/nlp"
)

// Provider implements nlp.Provider using an OpenAI-compatible tagger.
type Provider struct {
	config *nlp.Config
	tagger *Tagger
	codec  nlp.MUSCodec
	logger *slog.Logger
}

// NewProvider creates a new annotation provider backed by an OpenAI-compatible service.
// The config is validated and normalized before use.
//
// Returns nlp.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *nlp.Config) (nlp.Provider, error) {
	tagger, err := newTagger(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config: config,
		tagger: tagger,
		logger: slog.Default().With("component", "openai-provider"),
	}, nil
}

// Annotator returns the tagger.
func (p *Provider) Annotator() nlp.Annotator {
	return p.tagger
}

// Codec returns the MUS annotation codec.
func (p *Provider) Codec() core.AnnotationCodec {
	return p.codec
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
