package mock

import (
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/nlp"
)

// MockProvider is a test double for nlp.Provider.
type MockProvider struct {
	annotator *MockAnnotator
	closed    bool
}

// NewMockProvider creates a new mock provider with a default mock annotator.
//
// Returns nlp.Provider interface for consistency with production constructors.
// Use GetMockAnnotator() to access the concrete type for test assertions.
func NewMockProvider() nlp.Provider {
	return &MockProvider{annotator: NewMockAnnotator()}
}

// NewMockProviderWithAnnotator creates a mock provider around a custom annotator.
func NewMockProviderWithAnnotator(annotator *MockAnnotator) nlp.Provider {
	return &MockProvider{annotator: annotator}
}

// Annotator returns the mock annotator.
func (p *MockProvider) Annotator() nlp.Annotator {
	return p.annotator
}

// Codec returns the MUS codec.
func (p *MockProvider) Codec() core.AnnotationCodec {
	return nlp.MUSCodec{}
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockAnnotator returns the underlying mock annotator for test assertions.
func (p *MockProvider) GetMockAnnotator() *MockAnnotator {
	return p.annotator
}
