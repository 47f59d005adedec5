package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMUS_SizeMarshalSkip(t *testing.T) {
	rec := Record{Fields: []Field{
		{Name: CorpusKey, Kind: KindKeyword, Value: []byte("gigaword")},
		{Name: TextKey, Kind: KindText, Value: []byte("\tPrices rose."), Positions: true, TermVector: true},
		{Name: "empty", Kind: KindStored, Value: []byte{}},
	}}

	bs := make([]byte, RecordMUS.Size(rec))
	n := RecordMUS.Marshal(rec, bs)
	assert.Equal(t, len(bs), n)

	skipped, err := RecordMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	back, n, err := RecordMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, rec, back)

	_, _, err = RecordMUS.Unmarshal(bs[:len(bs)-1])
	assert.Error(t, err)
}

func TestAnnotationMUS_SizeMarshalSkip(t *testing.T) {
	ann := Annotation{
		Sentences: []Sentence{{
			Tokens: []Token{
				{Word: "Chirac", Lemma: "Chirac", POS: "NNP", NER: "PERSON", Begin: -1, End: -1},
				{Word: "spoke", Lemma: "speak", POS: "VBD", NER: "O", Begin: 7, End: 12},
			},
			Parse:        "(ROOT (S (NP (NNP Chirac)) (VP (VBD spoke))))",
			Dependencies: []Dependency{{Relation: "nsubj", Governor: 2, Dependent: 1}},
		}},
		Coref: []CorefChain{{Mentions: []Mention{
			{Sentence: 0, Start: 0, End: 1, Head: 0, Text: "Chirac", Representative: true},
		}}},
	}

	bs := make([]byte, AnnotationMUS.Size(ann))
	AnnotationMUS.Marshal(ann, bs)

	skipped, err := AnnotationMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), skipped)

	back, _, err := AnnotationMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, ann, back)
}

func TestMUS_EmptySlicesDecodeNonNil(t *testing.T) {
	bs := make([]byte, PostingMUS.Size(Posting{DocID: 3, Freq: 1}))
	PostingMUS.Marshal(Posting{DocID: 3, Freq: 1}, bs)

	p, _, err := PostingMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, ID(3), p.DocID)
	assert.NotNil(t, p.Positions)
	assert.Empty(t, p.Positions)
}

func TestFieldKindMUS(t *testing.T) {
	for _, kind := range []FieldKind{KindKeyword, KindStored, KindText} {
		bs := make([]byte, FieldKindMUS.Size(kind))
		FieldKindMUS.Marshal(kind, bs)
		back, _, err := FieldKindMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, kind, back)
	}
}
