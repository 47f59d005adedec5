package indexing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	"github.com/poiesic/corpora/corpus/gigaword"
	"github.com/poiesic/corpora/metrics"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/nlp/mock"
	"github.com/poiesic/corpora/storage"
	"github.com/poiesic/corpora/storage/badger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceParser implements corpus.Parser over a fixed list of documents.
type sliceParser struct {
	docs []*core.Document
	err  error
}

func newSliceParser(texts ...string) *sliceParser {
	p := &sliceParser{}
	for i, text := range texts {
		doc := core.NewDocument("test", text)
		doc.Set("id", fmt.Sprintf("doc-%d", i))
		p.docs = append(p.docs, doc)
	}
	return p
}

func (p *sliceParser) ParseNext() (*core.Document, error) {
	if len(p.docs) == 0 {
		return nil, p.err
	}
	doc := p.docs[0]
	p.docs = p.docs[1:]
	return doc, nil
}

func (p *sliceParser) Close() error { return nil }

func readAll(t *testing.T, path string) []*core.Document {
	t.Helper()
	reader, err := badger.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	records, err := reader.Scan(context.Background(), 0, 1000)
	require.NoError(t, err)
	docs := make([]*core.Document, 0, len(records))
	for _, sr := range records {
		doc, err := core.FromIndexRecord(sr.Record, nlp.MUSCodec{})
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return docs
}

func texts(docs []*core.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

func TestIndex_EndToEndArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "corpus", "sample.gz")
	require.NoError(t, os.MkdirAll(filepath.Dir(archive), 0o755))
	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(`<DOC id="A1" type="story">
<TEXT>
<P>
Markets opened higher
today.
</P>
</TEXT>
</DOC>
<DOC id="A2" type="other">
<TEXT>
Weather &amp; sports
</TEXT>
</DOC>
`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	parser, err := gigaword.Open(corpus.Source{Root: filepath.Join(dir, "corpus"), Label: "gigaword"})
	require.NoError(t, err)
	defer parser.Close()

	indexPath := filepath.Join(dir, "index")
	ix, err := NewIndexer(parser, indexPath)
	require.NoError(t, err)

	stats, err := ix.Index(context.Background(), IndexOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 0, stats.Annotated)

	docs := readAll(t, indexPath)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "gigaword", d.Corpus)
		assert.Nil(t, d.Annotation())
	}
	assert.Equal(t, []string{"\tMarkets opened higher today.", "Weather & sports"}, texts(docs))
	typ, _ := docs[1].Get("type")
	assert.Equal(t, "other", typ)
}

func TestIndex_CreateDropsAndAppendKeeps(t *testing.T) {
	ctx := context.Background()
	indexPath := t.TempDir()

	run := func(appendMode bool, in ...string) {
		ix, err := NewIndexer(newSliceParser(in...), indexPath)
		require.NoError(t, err)
		_, err = ix.Index(ctx, IndexOptions{Append: appendMode, BufferSizeMB: 16})
		require.NoError(t, err)
	}

	run(false, "one", "two")
	assert.Len(t, readAll(t, indexPath), 2)

	run(true, "three")
	assert.Equal(t, []string{"one", "two", "three"}, texts(readAll(t, indexPath)))

	run(false, "fresh")
	assert.Equal(t, []string{"fresh"}, texts(readAll(t, indexPath)))
}

func TestIndex_RunNLP(t *testing.T) {
	indexPath := t.TempDir()
	provider := mock.NewMockProvider()

	ix, err := NewIndexer(newSliceParser("Hello world", "Second doc"), indexPath, WithProvider(provider))
	require.NoError(t, err)

	stats, err := ix.Index(context.Background(), IndexOptions{RunNLP: true})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Annotated)
	assert.Equal(t, 2, provider.(*mock.MockProvider).GetMockAnnotator().CallCount())

	docs := readAll(t, indexPath)
	require.Len(t, docs, 2)
	want := mock.Annotation("Hello world")
	got := docs[0].Annotation()
	require.NotNil(t, got)
	require.Len(t, got.Sentences, len(want.Sentences))
	assert.Equal(t, want.Sentences[0].Tokens, got.Sentences[0].Tokens)
	assert.Empty(t, got.Sentences[0].Dependencies)
	assert.Empty(t, got.Coref)
	assert.Equal(t, "Hello world", docs[0].Text)
}

func TestIndex_RunNLPWithoutProvider(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index")

	ix, err := NewIndexer(newSliceParser("x"), indexPath)
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{RunNLP: true})
	assert.ErrorIs(t, err, ErrProviderRequired)
	assert.NoDirExists(t, indexPath)
}

func TestIndex_AnnotationFailureAborts(t *testing.T) {
	indexPath := t.TempDir()
	annotator := mock.NewMockAnnotator()
	annotator.AnnotateFunc = func(ctx context.Context, text string) (*core.Annotation, error) {
		if text == "bad" {
			return nil, errors.New("engine crashed")
		}
		return mock.Annotation(text), nil
	}
	m := metrics.New(false)

	ix, err := NewIndexer(newSliceParser("good", "bad", "never"), indexPath,
		WithProvider(mock.NewMockProviderWithAnnotator(annotator)),
		WithMetrics(m))
	require.NoError(t, err)

	stats, err := ix.Index(context.Background(), IndexOptions{RunNLP: true})
	assert.Nil(t, stats)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAnnotation)
	assert.Contains(t, err.Error(), "doc-1")
	assert.Equal(t, 2, annotator.CallCount())
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP corpora_annotation_failures_total Documents whose annotation failed after all attempts
# TYPE corpora_annotation_failures_total counter
corpora_annotation_failures_total 1
`), "corpora_annotation_failures_total"))
}

func TestIndex_AnnotationRetry(t *testing.T) {
	indexPath := t.TempDir()
	var calls atomic.Int32
	annotator := mock.NewMockAnnotator()
	annotator.AnnotateFunc = func(ctx context.Context, text string) (*core.Annotation, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("temporary")
		}
		return mock.Annotation(text), nil
	}

	ix, err := NewIndexer(newSliceParser("retry me"), indexPath,
		WithProvider(mock.NewMockProviderWithAnnotator(annotator)),
		WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	stats, err := ix.Index(context.Background(), IndexOptions{RunNLP: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Annotated)
	assert.Equal(t, 3, annotator.CallCount())
}

func TestIndex_WorkersCommitInOrder(t *testing.T) {
	indexPath := t.TempDir()
	annotator := mock.NewMockAnnotator()
	annotator.AnnotateFunc = func(ctx context.Context, text string) (*core.Annotation, error) {
		// earlier documents finish last
		var n int
		fmt.Sscanf(text, "document %d", &n)
		time.Sleep(time.Duration(20-n) * time.Millisecond)
		return mock.Annotation(text), nil
	}

	var want []string
	for i := range 20 {
		want = append(want, fmt.Sprintf("document %d", i))
	}

	ix, err := NewIndexer(newSliceParser(want...), indexPath,
		WithProvider(mock.NewMockProviderWithAnnotator(annotator)),
		WithWorkers(4))
	require.NoError(t, err)

	stats, err := ix.Index(context.Background(), IndexOptions{RunNLP: true})
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Documents)
	assert.Equal(t, 20, stats.Annotated)

	docs := readAll(t, indexPath)
	assert.Equal(t, want, texts(docs))
	for _, d := range docs {
		assert.NotNil(t, d.Annotation())
	}
}

func TestIndex_WorkersAbortOnFailure(t *testing.T) {
	annotator := mock.NewMockAnnotator()
	annotator.AnnotateFunc = func(ctx context.Context, text string) (*core.Annotation, error) {
		if text == "document 3" {
			return nil, errors.New("boom")
		}
		return mock.Annotation(text), nil
	}
	var in []string
	for i := range 10 {
		in = append(in, fmt.Sprintf("document %d", i))
	}

	ix, err := NewIndexer(newSliceParser(in...), t.TempDir(),
		WithProvider(mock.NewMockProviderWithAnnotator(annotator)),
		WithWorkers(3))
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{RunNLP: true})
	assert.ErrorIs(t, err, core.ErrAnnotation)
}

func TestIndex_ParseErrorAborts(t *testing.T) {
	parser := newSliceParser("one")
	parser.err = core.FormatError("parse", "bad.gz", 7, errors.New("missing </TEXT> marker"))

	ix, err := NewIndexer(parser, t.TempDir())
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{})
	assert.ErrorIs(t, err, core.ErrFormat)
}

func TestIndex_ProgressReports(t *testing.T) {
	var buf bytes.Buffer
	ix, err := NewIndexer(newSliceParser("a", "b", "c", "d", "e"), t.TempDir(),
		WithReportInterval(2),
		WithProgressWriter(&buf))
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Indexed 2 documents (")
	assert.Contains(t, out, "Indexed 4 documents (")
	assert.Contains(t, out, "Indexed 5 documents in ")
}

func TestIndex_Fidelity(t *testing.T) {
	ctx := context.Background()
	indexPath := t.TempDir()

	ix, err := NewIndexer(newSliceParser("rose rose fell"), indexPath)
	require.NoError(t, err)
	_, err = ix.Index(ctx, IndexOptions{StorePostings: true, StoreTermVectors: true})
	require.NoError(t, err)

	reader, err := badger.OpenReader(indexPath)
	require.NoError(t, err)
	defer reader.Close()

	postings, err := reader.Postings(ctx, core.TextKey, "rose")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, 2, postings[0].Freq)
	assert.Equal(t, []int{0, 1}, postings[0].Positions)

	tv, err := reader.TermVector(ctx, postings[0].DocID, core.TextKey)
	require.NoError(t, err)
	require.Len(t, tv.Terms, 2)
	assert.Equal(t, "fell", tv.Terms[0].Term)
}

func TestIndex_MinimalFidelity(t *testing.T) {
	ctx := context.Background()
	indexPath := t.TempDir()

	ix, err := NewIndexer(newSliceParser("rose rose fell"), indexPath)
	require.NoError(t, err)
	_, err = ix.Index(ctx, IndexOptions{})
	require.NoError(t, err)

	reader, err := badger.OpenReader(indexPath)
	require.NoError(t, err)
	defer reader.Close()

	postings, err := reader.Postings(ctx, core.TextKey, "rose")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, 2, postings[0].Freq)
	assert.Empty(t, postings[0].Positions)

	_, err = reader.TermVector(ctx, postings[0].DocID, core.TextKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIndex_StoreOpenFailure(t *testing.T) {
	ix, err := NewIndexer(newSliceParser("x"), "somewhere",
		WithStoreOpener(func(string, storage.WriterOptions) (storage.IndexWriter, error) {
			return nil, errors.New("disk on fire")
		}))
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{})
	assert.ErrorIs(t, err, core.ErrPersistence)
}

func TestIndex_Metrics(t *testing.T) {
	m := metrics.New(false)
	ix, err := NewIndexer(newSliceParser("a", "b"), t.TempDir(),
		WithProvider(mock.NewMockProvider()),
		WithMetrics(m))
	require.NoError(t, err)

	_, err = ix.Index(context.Background(), IndexOptions{RunNLP: true})
	require.NoError(t, err)

	expected := `
# HELP corpora_documents_annotated_total Documents enriched by the annotation engine
# TYPE corpora_documents_annotated_total counter
corpora_documents_annotated_total 2
# HELP corpora_documents_indexed_total Documents committed to the index
# TYPE corpora_documents_indexed_total counter
corpora_documents_indexed_total 2
# HELP corpora_documents_parsed_total Documents produced by the corpus parser
# TYPE corpora_documents_parsed_total counter
corpora_documents_parsed_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"corpora_documents_parsed_total",
		"corpora_documents_indexed_total",
		"corpora_documents_annotated_total"))
}

func TestIndex_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ix, err := NewIndexer(newSliceParser("a"), t.TempDir())
	require.NoError(t, err)
	_, err = ix.Index(ctx, IndexOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewIndexer_Validation(t *testing.T) {
	_, err := NewIndexer(nil, "x")
	assert.ErrorIs(t, err, ErrParserRequired)

	_, err = NewIndexer(newSliceParser(), "")
	assert.ErrorIs(t, err, ErrIndexPathRequired)

	_, err = NewIndexer(newSliceParser(), "x", WithRetry(0, time.Second))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = NewIndexer(newSliceParser(), "x", WithReportInterval(0))
	assert.Error(t, err)
}
