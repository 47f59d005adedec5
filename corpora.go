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

// Package corpora wires corpus parsers, annotation engines and the index
// store together from a configuration, and reads indexes back as documents.
package corpora

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/poiesic/corpora/analysis"
	"github.com/poiesic/corpora/config"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	_ "github.com/poiesic/corpora/corpus/gigaword"
	"github.com/poiesic/corpora/corpus/stored"
	"github.com/poiesic/corpora/indexing"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/nlp/basic"
	"github.com/poiesic/corpora/nlp/openai"
	"github.com/poiesic/corpora/storage"
	"github.com/poiesic/corpora/storage/badger"
)

// NewProvider creates the annotation engine selected by cfg.Engine.
func NewProvider(cfg *nlp.Config) (nlp.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Engine {
	case nlp.EngineBasic:
		return basic.NewProvider(), nil
	case nlp.EngineOpenAI:
		return openai.NewProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown annotation engine %q", cfg.Engine)
	}
}

// Run is an indexing run built from a configuration. It owns its parser
// and annotation provider.
type Run struct {
	parser   corpus.Parser
	provider nlp.Provider
	indexer  *indexing.Indexer
	options  indexing.IndexOptions
	logger   *slog.Logger
}

// NewRun validates cfg and builds the parser, provider and indexer it
// describes. Extra indexer options are applied after the configured ones.
func NewRun(cfg *config.Config, opts ...indexing.Option) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parser, err := corpus.Open(cfg.Corpus.Kind, corpus.Source{
		Root:   cfg.Corpus.Root,
		Suffix: cfg.Corpus.Suffix,
		Label:  cfg.Corpus.Label,
	})
	if err != nil {
		return nil, err
	}

	r := &Run{
		parser: parser,
		options: indexing.IndexOptions{
			Append:           cfg.Index.Append,
			BufferSizeMB:     cfg.Index.BufferSizeMB,
			RunNLP:           cfg.NLP.Enabled,
			StorePostings:    cfg.Index.StorePostings,
			StoreTermVectors: cfg.Index.StoreTermVectors,
		},
		logger: slog.Default().With("component", "run"),
	}

	ixOpts := []indexing.Option{
		indexing.WithWorkers(cfg.NLP.Workers),
		indexing.WithRetry(cfg.NLP.MaxAttempts, cfg.NLP.RetryDelay),
		indexing.WithReportInterval(cfg.Progress.ReportInterval),
	}
	if cfg.NLP.Enabled {
		provider, err := NewProvider(cfg.NLP.EngineConfig())
		if err != nil {
			r.Close()
			return nil, err
		}
		r.provider = provider
		ixOpts = append(ixOpts, indexing.WithProvider(provider))
	}
	if cfg.Index.Stoplist != "" {
		sl, err := analysis.LoadStoplist(cfg.Index.Stoplist)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("loading stoplist: %w", err)
		}
		ixOpts = append(ixOpts, indexing.WithAnalyzer(analysis.NewAnalyzer(sl.Terms)))
	}

	r.indexer, err = indexing.NewIndexer(parser, cfg.Index.Path, append(ixOpts, opts...)...)
	if err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// Options returns the options Execute passes to the indexer.
func (r *Run) Options() indexing.IndexOptions {
	return r.options
}

// Execute indexes the whole corpus.
func (r *Run) Execute(ctx context.Context) (*indexing.Stats, error) {
	return r.indexer.Index(ctx, r.options)
}

// Close releases the parser and the annotation provider.
func (r *Run) Close() error {
	var errs []error
	if err := r.parser.Close(); err != nil {
		r.logger.Error("error closing parser", "err", err)
		errs = append(errs, err)
	}
	if r.provider != nil {
		if err := r.provider.Close(); err != nil {
			r.logger.Error("error closing annotation provider", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Index is a read-only view of an index that returns documents.
type Index struct {
	reader storage.IndexReader
	codec  core.AnnotationCodec
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithCodec sets the codec used to decode annotations.
// Default is nlp.MUSCodec.
func WithCodec(codec core.AnnotationCodec) IndexOption {
	return func(ix *Index) {
		ix.codec = codec
	}
}

// OpenIndex opens the index at path read-only.
func OpenIndex(path string, opts ...IndexOption) (*Index, error) {
	reader, err := badger.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return NewIndex(reader, opts...), nil
}

// NewIndex wraps an open reader. Close closes the reader.
func NewIndex(reader storage.IndexReader, opts ...IndexOption) *Index {
	ix := &Index{reader: reader, codec: nlp.MUSCodec{}}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Reader returns the underlying index reader.
func (ix *Index) Reader() storage.IndexReader {
	return ix.reader
}

// NumDocs returns the number of documents in the index.
func (ix *Index) NumDocs(ctx context.Context) (int, error) {
	return ix.reader.NumDocs(ctx)
}

// Document returns the document stored under id.
func (ix *Index) Document(ctx context.Context, id core.ID) (*core.Document, error) {
	rec, err := ix.reader.Record(ctx, id)
	if err != nil {
		return nil, err
	}
	return ix.Decode(rec)
}

// Decode converts a stored record to a document.
func (ix *Index) Decode(rec *core.Record) (*core.Document, error) {
	return core.FromIndexRecord(rec, ix.codec)
}

// Documents iterates over every document in ID order.
func (ix *Index) Documents(ctx context.Context) iter.Seq2[*core.Document, error] {
	return corpus.All(stored.NewParser(ix.reader, ix.codec, stored.WithContext(ctx)))
}

// Postings returns the postings of term in the text field.
func (ix *Index) Postings(ctx context.Context, term string) ([]core.Posting, error) {
	return ix.reader.Postings(ctx, core.TextKey, term)
}

// Close closes the reader.
func (ix *Index) Close() error {
	return ix.reader.Close()
}
