// Package corpus defines the parser contract shared by every corpus source
// and helpers to enumerate archives and consume parsers as sequences.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/corpora/core"
)

// Parser produces a finite, single-pass sequence of documents.
type Parser interface {
	// ParseNext returns the next document, or nil when the corpus is
	// exhausted. Calling it again after exhaustion keeps returning nil, nil.
	ParseNext() (*core.Document, error)

	// Close releases the parser's resources. It is safe to call more than once.
	Close() error
}

// All returns a sequence over the remaining documents of p. If parsing fails
// the sequence yields one final (nil, err) pair and stops.
func All(p Parser) iter.Seq2[*core.Document, error] {
	return func(yield func(*core.Document, error) bool) {
		for {
			doc, err := p.ParseNext()
			if err != nil {
				yield(nil, err)
				return
			}
			if doc == nil {
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// Collect drains p into a slice. Intended for tests and small corpora.
func Collect(p Parser) ([]*core.Document, error) {
	var docs []*core.Document
	for doc, err := range All(p) {
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindFiles returns every regular file under root whose name ends with
// suffix, in lexical order.
func FindFiles(root, suffix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), suffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, core.ResourceError("find", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// Source describes where a parser reads from.
type Source struct {
	// Root is a directory of archives, or an index path for replay.
	Root string

	// Suffix selects archive files under Root. Kinds supply a default.
	Suffix string

	// Label is stored as every document's corpus.
	Label string
}

// Factory builds a parser for a source.
type Factory func(src Source) (Parser, error)

// ErrUnknownKind is returned by Open for unregistered corpus kinds.
var ErrUnknownKind = errors.New("unknown corpus kind")

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a corpus kind available to Open. Registering the same kind
// twice panics.
func Register(kind string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if f == nil {
		panic("corpus: nil factory for " + kind)
	}
	if _, dup := registry[kind]; dup {
		panic("corpus: duplicate kind " + kind)
	}
	registry[kind] = f
}

// Kinds lists the registered corpus kinds in order.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Open builds a parser of the given kind.
func Open(kind string, src Source) (Parser, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(kind)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(src)
}
