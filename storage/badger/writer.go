package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpora/analysis"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/storage"
)

// Writer implements storage.IndexWriter on a Backend.
// Writes are buffered in a WriteBatch and become visible after ForceMerge or Close.
type Writer struct {
	mu        sync.Mutex
	backend   *Backend
	ownsDB    bool
	idSeq     *badger.Sequence
	batch     *badger.WriteBatch
	analyzer  *analysis.Analyzer
	seenTerms map[core.ID]struct{}
	numDocs   int
	closed    bool
	logger    *slog.Logger
}

var _ storage.IndexWriter = (*Writer)(nil)

// WriterOption configures a Writer.
type WriterOption func(*Writer) error

// WithAnalyzer sets the analyzer used to tokenize text fields.
func WithAnalyzer(a *analysis.Analyzer) WriterOption {
	return func(w *Writer) error {
		if a == nil {
			return fmt.Errorf("analyzer cannot be nil")
		}
		w.analyzer = a
		return nil
	}
}

// WithWriterLogger sets the writer's logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) error {
		w.logger = logger
		return nil
	}
}

// OpenWriter opens the index at path for writing.
// The returned writer owns the database and closes it on Close.
func OpenWriter(path string, wo storage.WriterOptions, opts ...WriterOption) (storage.IndexWriter, error) {
	w := &Writer{}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	backend, err := OpenBackend(path, BackendOptions{MemTableMB: wo.BufferSizeMB, Logger: w.logger})
	if err != nil {
		return nil, core.PersistenceError("open", path, err)
	}
	w, err = newWriter(backend, wo.Mode, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	w.ownsDB = true
	return w, nil
}

// NewWriter creates a writer on an already open backend. The caller keeps
// ownership of the backend.
func NewWriter(backend *Backend, mode storage.OpenMode, opts ...WriterOption) (storage.IndexWriter, error) {
	return newWriter(backend, mode, opts...)
}

func newWriter(backend *Backend, mode storage.OpenMode, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		backend:   backend,
		analyzer:  analysis.NewAnalyzer(nil),
		seenTerms: make(map[core.ID]struct{}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	w.logger = w.logger.With("component", "index-writer")

	switch mode {
	case storage.ModeCreate:
		if err := backend.DropAll(); err != nil {
			return nil, core.PersistenceError("drop", backend.Path(), err)
		}
	case storage.ModeCreateOrAppend:
	default:
		return nil, fmt.Errorf("%w: %d", storage.ErrInvalidMode, mode)
	}

	idSeq, err := backend.GetSequence(docIDSeq)
	if err != nil {
		return nil, core.PersistenceError("sequence", backend.Path(), err)
	}
	w.idSeq = idSeq
	w.batch = backend.NewWriteBatch()
	w.logger.Debug("writer opened", "path", backend.Path(), "mode", mode.String())
	return w, nil
}

// nextID returns the next document ID.
func (w *Writer) nextID() (core.ID, error) {
	if w.idSeq == nil {
		idSeq, err := w.backend.GetSequence(docIDSeq)
		if err != nil {
			return 0, err
		}
		w.idSeq = idSeq
	}
	nextID, err := w.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = w.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// AddRecord stores rec and indexes its keyword and text fields.
func (w *Writer) AddRecord(ctx context.Context, rec *core.Record) (core.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := core.ValidateRecord(rec); err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, storage.ErrStorageClosed
	}

	id, err := w.nextID()
	if err != nil {
		return 0, core.PersistenceError("add", w.backend.Path(), err)
	}
	if err := w.write(id, rec); err != nil {
		return 0, core.PersistenceError("add", w.backend.Path(), err)
	}
	w.numDocs++
	return id, nil
}

func (w *Writer) write(id core.ID, rec *core.Record) error {
	if err := w.batch.Set(makeDocKey(id), storage.MarshalRecord(rec)); err != nil {
		return err
	}

	for _, f := range rec.Fields {
		switch f.Kind {
		case core.KindKeyword:
			posting := core.Posting{DocID: id, Freq: 1}
			if err := w.writePosting(f.Name, string(f.Value), &posting); err != nil {
				return err
			}
		case core.KindText:
			if err := w.writeText(id, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeText(id core.ID, f core.Field) error {
	tokens := w.analyzer.Analyze(string(f.Value))

	postings := make(map[string]*core.Posting)
	for _, tok := range tokens {
		p, ok := postings[tok.Term]
		if !ok {
			p = &core.Posting{DocID: id}
			postings[tok.Term] = p
		}
		p.Freq++
		if f.Positions {
			p.Positions = append(p.Positions, tok.Position)
			p.Starts = append(p.Starts, tok.Start)
			p.Ends = append(p.Ends, tok.End)
		}
	}

	terms := make([]string, 0, len(postings))
	for term := range postings {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	for _, term := range terms {
		if err := w.writePosting(f.Name, term, postings[term]); err != nil {
			return err
		}
	}

	if !f.TermVector {
		return nil
	}
	tv := core.TermVector{Field: f.Name, Terms: make([]core.TermVectorEntry, 0, len(terms))}
	for _, term := range terms {
		p := postings[term]
		tv.Terms = append(tv.Terms, core.TermVectorEntry{Term: term, Freq: p.Freq, Positions: p.Positions})
	}
	return w.batch.Set(makeTermVectorKey(id, f.Name), storage.MarshalTermVector(&tv))
}

func (w *Writer) writePosting(field, term string, p *core.Posting) error {
	tid := termID(field, term)
	if _, ok := w.seenTerms[tid]; !ok {
		if err := w.batch.Set(makeTermKey(tid), storage.MarshalTerm(field, term)); err != nil {
			return err
		}
		w.seenTerms[tid] = struct{}{}
	}
	return w.batch.Set(makePostingKey(tid, p.DocID), storage.MarshalPosting(p))
}

// releaseSequence returns the unused part of the ID lease to the database.
// nextID leases a new range on demand.
func (w *Writer) releaseSequence() error {
	if w.idSeq == nil {
		return nil
	}
	err := w.idSeq.Release()
	w.idSeq = nil
	return err
}

// ForceMerge flushes pending writes and compacts the store so every table
// sits on one LSM level. The ID lease is released first; a writer that only
// closes afterwards leaves nothing in the memtable.
func (w *Writer) ForceMerge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return storage.ErrStorageClosed
	}

	if err := w.batch.Flush(); err != nil {
		return core.PersistenceError("merge", w.backend.Path(), err)
	}
	if err := w.releaseSequence(); err != nil {
		return core.PersistenceError("merge", w.backend.Path(), err)
	}
	err := w.backend.Compact()
	w.batch = w.backend.NewWriteBatch()
	if err != nil {
		return core.PersistenceError("merge", w.backend.Path(), err)
	}
	w.logger.Debug("index merged", "docs", w.numDocs)
	return nil
}

// NumDocs returns the number of records added by this writer.
func (w *Writer) NumDocs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.numDocs
}

// Close flushes pending writes, releases the ID sequence, and closes the
// database if the writer owns it. Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.batch.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := w.releaseSequence(); err != nil {
		errs = append(errs, err)
	}
	if w.ownsDB {
		if err := w.backend.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return core.PersistenceError("close", w.backend.Path(), errors.Join(errs...))
	}
	return nil
}
