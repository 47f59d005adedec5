package nlp

import (
	"context"

	"github.com/poiesic/corpora/core"
)

// Annotator produces a linguistic annotation of text.
// Implementations must be thread-safe for concurrent use.
type Annotator interface {
	// Annotate analyzes text and returns its sentences and tokens, with
	// whatever tags the engine supports. Empty text yields an empty annotation.
	Annotate(ctx context.Context, text string) (*core.Annotation, error)
}

// Provider aggregates an annotation engine with the codec used to store its
// output.
type Provider interface {
	// Annotator returns the annotation engine.
	// The returned Annotator is safe for concurrent use.
	Annotator() Annotator

	// Codec returns the codec for persisting annotations.
	Codec() core.AnnotationCodec

	// Close releases resources held by the provider.
	// After Close is called, the provider and its annotator should not be used.
	Close() error
}

// AnnotatorFunc adapts a function to the Annotator interface.
type AnnotatorFunc func(ctx context.Context, text string) (*core.Annotation, error)

// Annotate calls f.
func (f AnnotatorFunc) Annotate(ctx context.Context, text string) (*core.Annotation, error) {
	return f(ctx, text)
}
