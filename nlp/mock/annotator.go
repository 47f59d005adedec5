package mock

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/nlp"
)

// MockAnnotator is a test double for nlp.Annotator. It is safe for
// concurrent use.
type MockAnnotator struct {
	// AnnotateFunc allows custom behavior for Annotate.
	// If nil, uses default whitespace segmentation.
	AnnotateFunc func(ctx context.Context, text string) (*core.Annotation, error)

	callCount atomic.Int64
	mu        sync.Mutex
	texts     []string
}

var _ nlp.Annotator = (*MockAnnotator)(nil)

// NewMockAnnotator creates a mock annotator with default behavior.
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{}
}

// Annotate records the call and returns a simple annotation.
// Default behavior: one sentence per non-empty line, whitespace-separated tokens.
func (m *MockAnnotator) Annotate(ctx context.Context, text string) (*core.Annotation, error) {
	m.callCount.Add(1)
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(ctx, text)
	}
	return Annotation(text), nil
}

// Annotation builds the default mock annotation for text.
func Annotation(text string) *core.Annotation {
	ann := &core.Annotation{}
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		var s core.Sentence
		pos := 0
		for _, word := range strings.Fields(line) {
			i := strings.Index(line[pos:], word) + pos
			s.Tokens = append(s.Tokens, core.Token{
				Word:  word,
				Lemma: strings.ToLower(word),
				POS:   "NN",
				NER:   "O",
				Begin: offset + i,
				End:   offset + i + len(word),
			})
			pos = i + len(word)
		}
		if len(s.Tokens) > 0 {
			ann.Sentences = append(ann.Sentences, s)
		}
		offset += len(line)
	}
	return ann
}

// CallCount returns the number of times Annotate was called.
func (m *MockAnnotator) CallCount() int {
	return int(m.callCount.Load())
}

// Texts returns the texts passed to Annotate, in call order.
func (m *MockAnnotator) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Reset clears the call history and custom functions.
func (m *MockAnnotator) Reset() {
	m.callCount.Store(0)
	m.mu.Lock()
	m.texts = nil
	m.mu.Unlock()
	m.AnnotateFunc = nil
}
