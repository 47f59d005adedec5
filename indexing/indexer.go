package indexing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpora/analysis"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	"github.com/poiesic/corpora/metrics"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/storage"
	"github.com/poiesic/corpora/storage/badger"
)

const (
	// DefaultReportInterval is the number of documents between progress reports.
	DefaultReportInterval = 10000

	// DefaultRetryDelay is the base delay between annotation attempts.
	DefaultRetryDelay = 500 * time.Millisecond
)

// StoreOpener opens the index writer for a run.
type StoreOpener func(path string, opts storage.WriterOptions) (storage.IndexWriter, error)

// Indexer drains a corpus parser into an index store, optionally
// annotating every document on the way.
type Indexer struct {
	parser         corpus.Parser
	indexPath      string
	provider       nlp.Provider
	workers        int
	reportInterval int
	progress       io.Writer
	metrics        *metrics.Metrics
	maxAttempts    int
	retryDelay     time.Duration
	analyzer       *analysis.Analyzer
	openStore      StoreOpener
	logger         *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// WithProvider sets the annotation engine used when RunNLP is requested.
func WithProvider(provider nlp.Provider) Option {
	return func(ix *Indexer) error {
		ix.provider = provider
		return nil
	}
}

// WithWorkers annotates up to n documents concurrently. Documents are
// still committed one at a time in parse order. Default is 1.
func WithWorkers(n int) Option {
	return func(ix *Indexer) error {
		if n < 1 {
			n = 1
		}
		ix.workers = n
		return nil
	}
}

// WithReportInterval sets the number of documents between progress reports.
func WithReportInterval(n int) Option {
	return func(ix *Indexer) error {
		if n <= 0 {
			return fmt.Errorf("report interval must be positive, got %d", n)
		}
		ix.reportInterval = n
		return nil
	}
}

// WithProgressWriter writes progress lines to w instead of the logger.
func WithProgressWriter(w io.Writer) Option {
	return func(ix *Indexer) error {
		ix.progress = w
		return nil
	}
}

// WithMetrics records pipeline counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(ix *Indexer) error {
		ix.metrics = m
		return nil
	}
}

// WithRetry retries a failed annotation up to maxAttempts times in total,
// doubling baseDelay between attempts. Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(ix *Indexer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		ix.maxAttempts = maxAttempts
		ix.retryDelay = baseDelay
		return nil
	}
}

// WithAnalyzer sets the analyzer the default store uses for text fields.
func WithAnalyzer(a *analysis.Analyzer) Option {
	return func(ix *Indexer) error {
		if a == nil {
			return errors.New("analyzer cannot be nil")
		}
		ix.analyzer = a
		return nil
	}
}

// WithStoreOpener replaces the BadgerDB index store.
func WithStoreOpener(open StoreOpener) Option {
	return func(ix *Indexer) error {
		if open == nil {
			return errors.New("store opener cannot be nil")
		}
		ix.openStore = open
		return nil
	}
}

// NewIndexer creates an indexer that reads from parser and writes to the
// index at indexPath. The caller keeps ownership of parser.
func NewIndexer(parser corpus.Parser, indexPath string, opts ...Option) (*Indexer, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if indexPath == "" {
		return nil, ErrIndexPathRequired
	}

	ix := &Indexer{
		parser:         parser,
		indexPath:      indexPath,
		workers:        1,
		reportInterval: DefaultReportInterval,
		maxAttempts:    1,
		retryDelay:     DefaultRetryDelay,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}
	ix.logger = ix.logger.With("component", "indexer")
	if ix.openStore == nil {
		ix.openStore = ix.openBadger
	}
	return ix, nil
}

func (ix *Indexer) openBadger(path string, opts storage.WriterOptions) (storage.IndexWriter, error) {
	wopts := []badger.WriterOption{badger.WithWriterLogger(ix.logger)}
	if ix.analyzer != nil {
		wopts = append(wopts, badger.WithAnalyzer(ix.analyzer))
	}
	return badger.OpenWriter(path, opts, wopts...)
}

// IndexOptions selects the open mode and storage fidelity of a run.
type IndexOptions struct {
	// Append keeps existing index content; otherwise it is dropped.
	Append bool

	// BufferSizeMB bounds the store's in-memory write buffer. Zero keeps the
	// store default.
	BufferSizeMB int

	// RunNLP annotates every document before it is stored.
	RunNLP bool

	// StorePostings records token positions and offsets for the text field.
	StorePostings bool

	// StoreTermVectors records a term vector per document.
	StoreTermVectors bool
}

// Stats summarizes a completed run.
type Stats struct {
	Documents int
	Annotated int
	MergeTime time.Duration
	Elapsed   time.Duration
}

// run holds the state of one Index call.
type run struct {
	ix        *Indexer
	opts      IndexOptions
	writer    storage.IndexWriter
	annotator nlp.Annotator
	codec     core.AnnotationCodec
	tracker   *ProgressTracker
	stats     Stats
}

// Index drains the parser into the index, force merges it and closes it.
// Any parse, annotation or store failure aborts the run; the store is
// closed without merging and keeps whatever was flushed before the failure.
func (ix *Indexer) Index(ctx context.Context, opts IndexOptions) (stats *Stats, err error) {
	defer func() { ix.metrics.RunFinished(err) }()

	r := &run{ix: ix, opts: opts, codec: nlp.MUSCodec{}}
	if ix.provider != nil {
		r.codec = ix.provider.Codec()
	}
	if opts.RunNLP {
		if ix.provider == nil {
			return nil, ErrProviderRequired
		}
		r.annotator = ix.provider.Annotator()
	}

	mode := storage.ModeCreate
	if opts.Append {
		mode = storage.ModeCreateOrAppend
	}
	writer, err := ix.openStore(ix.indexPath, storage.WriterOptions{Mode: mode, BufferSizeMB: opts.BufferSizeMB})
	if err != nil {
		return nil, classify("open", ix.indexPath, err)
	}
	r.writer = writer
	ix.logger.Info("indexing started",
		"path", ix.indexPath,
		"mode", mode.String(),
		"nlp", opts.RunNLP,
		"postings", opts.StorePostings,
		"termVectors", opts.StoreTermVectors,
		"workers", ix.workers)

	r.tracker = NewProgressTracker(ix.progress, ix.logger, ix.reportInterval)
	r.tracker.Start()

	if ix.workers > 1 && opts.RunNLP {
		err = r.drainConcurrent(ctx)
	} else {
		err = r.drain(ctx)
	}
	if err != nil {
		if cerr := writer.Close(); cerr != nil {
			ix.logger.Warn("failed to close index after error", "error", cerr)
		}
		ix.logger.Error("indexing aborted", "documents", r.stats.Documents, "error", err)
		return nil, err
	}

	mergeStart := time.Now()
	if err := writer.ForceMerge(ctx); err != nil {
		writer.Close()
		return nil, classify("merge", ix.indexPath, err)
	}
	r.stats.MergeTime = time.Since(mergeStart)
	ix.metrics.Merged(r.stats.MergeTime)

	if err := writer.Close(); err != nil {
		return nil, classify("close", ix.indexPath, err)
	}

	r.tracker.Finish()
	r.stats.Elapsed = r.tracker.Elapsed()
	ix.logger.Info("indexing complete",
		"documents", r.stats.Documents,
		"annotated", r.stats.Annotated,
		"merge", r.stats.MergeTime,
		"elapsed", r.stats.Elapsed)
	return &r.stats, nil
}

// next pulls the next document from the parser.
func (r *run) next(ctx context.Context) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := r.ix.parser.ParseNext()
	if err != nil {
		return nil, err
	}
	if doc != nil {
		r.ix.metrics.DocumentParsed()
	}
	return doc, nil
}

// drain parses, annotates and commits one document at a time.
func (r *run) drain(ctx context.Context) error {
	for {
		doc, err := r.next(ctx)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if r.annotator != nil {
			if err := r.ix.annotate(ctx, r.annotator, doc); err != nil {
				return err
			}
			r.stats.Annotated++
		}
		if err := r.commit(ctx, doc); err != nil {
			return err
		}
	}
}

// pending is a document being annotated by the pool.
type pending struct {
	doc  *core.Document
	done chan struct{}
	err  error
}

// drainConcurrent annotates on a worker pool while this goroutine keeps
// sole ownership of the writer and commits in parse order.
func (r *run) drainConcurrent(ctx context.Context) error {
	pool, err := ants.NewPool(r.ix.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	window := 2 * r.ix.workers
	queue := make([]*pending, 0, window)

	// wait for in-flight work before returning so no worker touches a
	// document after the run ends
	abort := func(err error) error {
		for _, p := range queue {
			<-p.done
		}
		return err
	}

	commitHead := func() error {
		head := queue[0]
		queue = queue[1:]
		<-head.done
		if head.err != nil {
			return head.err
		}
		r.stats.Annotated++
		return r.commit(ctx, head.doc)
	}

	for {
		doc, err := r.next(ctx)
		if err != nil {
			return abort(err)
		}
		if doc == nil {
			break
		}

		p := &pending{doc: doc, done: make(chan struct{})}
		err = pool.Submit(func() {
			defer close(p.done)
			p.err = r.ix.annotate(ctx, r.annotator, p.doc)
		})
		if err != nil {
			return abort(err)
		}
		queue = append(queue, p)

		if len(queue) >= window {
			if err := commitHead(); err != nil {
				return abort(err)
			}
		}
	}

	for len(queue) > 0 {
		if err := commitHead(); err != nil {
			return abort(err)
		}
	}
	return nil
}

// commit converts doc to a record and appends it to the writer.
func (r *run) commit(ctx context.Context, doc *core.Document) error {
	rec, err := doc.ToIndexRecord(r.codec, r.opts.StorePostings, r.opts.StoreTermVectors)
	if err != nil {
		file, _ := doc.Get("file")
		id, _ := doc.Get("id")
		return core.FormatError("convert", file, 0, fmt.Errorf("document %q: %w", id, err))
	}
	if _, err := r.writer.AddRecord(ctx, rec); err != nil {
		return classify("add", r.ix.indexPath, err)
	}
	r.stats.Documents++
	r.ix.metrics.DocumentIndexed()
	r.tracker.Increment(1)
	return nil
}

// annotate runs the annotator on doc with retries and attaches the result.
func (ix *Indexer) annotate(ctx context.Context, annotator nlp.Annotator, doc *core.Document) error {
	start := time.Now()
	var ann *core.Annotation
	err := RetryWithBackoff(ctx, ix.logger, ix.maxAttempts, ix.retryDelay, func(attempt int) error {
		if attempt > 1 {
			ix.metrics.AnnotationRetried()
		}
		var err error
		ann, err = annotator.Annotate(ctx, doc.Text)
		return err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		ix.metrics.AnnotationFailed()
		id, _ := doc.Get("id")
		return core.AnnotationError("annotate", fmt.Errorf("document %q: %w", id, err))
	}
	doc.SetAnnotation(ann)
	ix.metrics.DocumentAnnotated(time.Since(start))
	return nil
}

// classify wraps store errors that carry no category as persistence errors.
func classify(op, path string, err error) error {
	if core.KindOf(err) != 0 || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return core.PersistenceError(op, path, err)
}
