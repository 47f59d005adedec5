// Package stored replays the documents of an existing index as a corpus,
// so they can be re-annotated or copied into a new index.
package stored

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/storage"
	"github.com/poiesic/corpora/storage/badger"
)

const (
	// Kind is the corpus kind this package registers.
	Kind = "index"

	// DefaultBatchSize is the number of records fetched per scan.
	DefaultBatchSize = 100
)

// Parser yields the documents of an index in document ID order.
type Parser struct {
	ctx        context.Context
	reader     storage.IndexReader
	ownsReader bool
	codec      core.AnnotationCodec
	label      string
	batchSize  int
	logger     *slog.Logger

	after core.ID
	batch []storage.StoredRecord
	done  bool
	err   error
}

var _ corpus.Parser = (*Parser)(nil)

// Option configures a Parser.
type Option func(*Parser)

// WithBatchSize sets how many records are fetched per scan.
func WithBatchSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithLabel relabels every document's corpus.
func WithLabel(label string) Option {
	return func(p *Parser) {
		p.label = label
	}
}

// WithContext sets the context used for reads.
func WithContext(ctx context.Context) Option {
	return func(p *Parser) {
		p.ctx = ctx
	}
}

// WithLogger sets the parser's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a parser over reader. Annotations are decoded with
// codec. The caller keeps ownership of reader.
func NewParser(reader storage.IndexReader, codec core.AnnotationCodec, opts ...Option) *Parser {
	p := &Parser{
		ctx:       context.Background(),
		reader:    reader,
		codec:     codec,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "stored-parser")
	return p
}

// Open opens the index at src.Root read-only and returns a parser that
// closes it on Close.
func Open(src corpus.Source, opts ...Option) (*Parser, error) {
	reader, err := badger.OpenReader(src.Root)
	if err != nil {
		return nil, err
	}
	if src.Label != "" {
		opts = append([]Option{WithLabel(src.Label)}, opts...)
	}
	p := NewParser(reader, nlp.MUSCodec{}, opts...)
	p.ownsReader = true
	return p, nil
}

func init() {
	corpus.Register(Kind, func(src corpus.Source) (corpus.Parser, error) {
		return Open(src)
	})
}

// ParseNext returns the next stored document, or nil after the last one.
func (p *Parser) ParseNext() (*core.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.batch) == 0 && !p.done {
		if err := p.fetch(); err != nil {
			p.err = err
			return nil, err
		}
	}
	if len(p.batch) == 0 {
		return nil, nil
	}

	sr := p.batch[0]
	p.batch = p.batch[1:]
	doc, err := core.FromIndexRecord(sr.Record, p.codec)
	if err != nil {
		p.err = core.FormatError("decode", fmt.Sprintf("doc:%d", sr.ID), 0, err)
		return nil, p.err
	}
	if p.label != "" {
		doc.Corpus = p.label
	}
	return doc, nil
}

func (p *Parser) fetch() error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	batch, err := p.reader.Scan(p.ctx, p.after, p.batchSize)
	if err != nil {
		return core.ResourceError("scan", "", err)
	}
	if len(batch) < p.batchSize {
		p.done = true
	}
	if len(batch) > 0 {
		p.after = batch[len(batch)-1].ID
		p.logger.Debug("fetched batch", "records", len(batch), "after", p.after)
	}
	p.batch = batch
	return nil
}

// Close stops the replay and closes the reader if the parser opened it.
func (p *Parser) Close() error {
	p.batch = nil
	p.done = true
	p.err = nil
	if !p.ownsReader {
		return nil
	}
	p.ownsReader = false
	if err := p.reader.Close(); err != nil {
		return core.ResourceError("close", "", err)
	}
	return nil
}
