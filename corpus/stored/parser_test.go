package stored

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/storage"
	"github.com/poiesic/corpora/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIndex(t *testing.T, docs ...*core.Document) storage.IndexReader {
	t.Helper()
	ctx := context.Background()
	writer, reader, backend, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() {
		writer.Close()
		backend.Close()
	})

	for _, doc := range docs {
		rec, err := doc.ToIndexRecord(nlp.MUSCodec{}, false, false)
		require.NoError(t, err)
		_, err = writer.AddRecord(ctx, rec)
		require.NoError(t, err)
	}
	require.NoError(t, writer.ForceMerge(ctx))
	return reader
}

func TestParser_ReplaysInOrder(t *testing.T) {
	var docs []*core.Document
	for i := range 5 {
		doc := core.NewDocument("news", fmt.Sprintf("document %d", i))
		doc.Set("id", fmt.Sprintf("d%d", i))
		docs = append(docs, doc)
	}
	reader := seedIndex(t, docs...)

	p := NewParser(reader, nlp.MUSCodec{}, WithBatchSize(2))
	defer p.Close()

	got, err := corpus.Collect(p)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, doc := range got {
		assert.Equal(t, docs[i].Text, doc.Text)
		assert.Equal(t, "news", doc.Corpus)
		id, _ := doc.Get("id")
		assert.Equal(t, fmt.Sprintf("d%d", i), id)
	}

	doc, err := p.ParseNext()
	assert.Nil(t, doc)
	assert.NoError(t, err)
}

func TestParser_DecodesAnnotation(t *testing.T) {
	doc := core.NewDocument("news", "Hi there.")
	ann := &core.Annotation{Sentences: []core.Sentence{{Tokens: []core.Token{
		{Word: "Hi", Lemma: "hi", POS: "UH", NER: "O", Begin: 0, End: 2},
		{Word: "there", Lemma: "there", POS: "RB", NER: "O", Begin: 3, End: 8},
		{Word: ".", Lemma: ".", POS: ".", NER: "O", Begin: 8, End: 9},
	}, Dependencies: []core.Dependency{
		{Relation: "root", Governor: 0, Dependent: 1},
		{Relation: "advmod", Governor: 1, Dependent: 2},
	}}}, Coref: []core.CorefChain{}}
	doc.SetAnnotation(ann)
	reader := seedIndex(t, doc)

	p := NewParser(reader, nlp.MUSCodec{}, WithLabel("relabelled"))
	got, err := corpus.Collect(p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "relabelled", got[0].Corpus)
	assert.Equal(t, ann, got[0].Annotation())
}

func TestParser_EmptyIndex(t *testing.T) {
	reader := seedIndex(t)

	p := NewParser(reader, nlp.MUSCodec{})
	doc, err := p.ParseNext()
	assert.Nil(t, doc)
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestParser_CanceledContext(t *testing.T) {
	reader := seedIndex(t, core.NewDocument("news", "x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewParser(reader, nlp.MUSCodec{}, WithContext(ctx))
	_, err := p.ParseNext()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_FromDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writer, err := badger.OpenWriter(dir, storage.WriterOptions{Mode: storage.ModeCreate})
	require.NoError(t, err)
	rec, err := core.NewDocument("news", "stored text").ToIndexRecord(nil, false, false)
	require.NoError(t, err)
	_, err = writer.AddRecord(ctx, rec)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	p, err := corpus.Open(Kind, corpus.Source{Root: dir})
	require.NoError(t, err)
	got, err := corpus.Collect(p)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	require.Len(t, got, 1)
	assert.Equal(t, "stored text", got[0].Text)
}
