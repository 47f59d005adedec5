package gigaword

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoDocs = `<DOC id="AFP_ENG_19940512.0004" type="story">
<HEADLINE>
Prices rise
</HEADLINE>
<TEXT>
<P>
Prices rose sharply
on Monday.
</P>
<P>
Traders &amp; brokers were surprised.
</P>
</TEXT>
</DOC>
<DOC id="AFP_ENG_19940512.0005" type="other">
<TEXT>
Results: 3 &lt; 4 &gt; 2
</TEXT>
</DOC>
`

func writeArchive(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func parseAll(t *testing.T, p *Parser) []*core.Document {
	t.Helper()
	docs, err := corpus.Collect(p)
	require.NoError(t, err)
	return docs
}

func get(t *testing.T, doc *core.Document, key string) string {
	t.Helper()
	v, ok := doc.Get(key)
	require.True(t, ok, "attribute %q missing", key)
	return v
}

func TestParser_TwoDocuments(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "afp_eng_199405.gz", twoDocs)

	p := NewParser("gigaword", []string{path})
	defer p.Close()

	docs := parseAll(t, p)
	require.Len(t, docs, 2)

	assert.Equal(t, "gigaword", docs[0].Corpus)
	assert.Equal(t, "\tPrices rose sharply on Monday.\tTraders & brokers were surprised.", docs[0].Text)
	assert.Equal(t, "AFP_ENG_19940512.0004", get(t, docs[0], AttrID))
	assert.Equal(t, "story", get(t, docs[0], AttrType))
	assert.Equal(t, "afp_eng_199405.gz", get(t, docs[0], AttrFile))

	assert.Equal(t, "Results: 3 < 4 > 2", docs[1].Text)
	assert.Equal(t, "other", get(t, docs[1], AttrType))
}

func TestParser_ParagraphJoining(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", "<DOC id=\"1\">\n<TEXT>\n<P>\nhello\nworld\n</P>\n</TEXT>\n</DOC>\n")

	docs := parseAll(t, NewParser("c", []string{path}))
	require.Len(t, docs, 1)
	assert.Equal(t, "\thello world", docs[0].Text)
}

func TestParser_CRLF(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", "<DOC id=\"1\" type=\"story\">\r\n<TEXT>\r\n<P>\r\nhello\r\nworld\r\n</P>\r\n</TEXT>\r\n</DOC>\r\n")

	docs := parseAll(t, NewParser("c", []string{path}))
	require.Len(t, docs, 1)
	assert.Equal(t, "\thello world", docs[0].Text)
	assert.Equal(t, "story", get(t, docs[0], AttrType))
}

func TestParser_MissingAttributesDefaultEmpty(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", "<DOC>\n<TEXT>\nbody\n</TEXT>\n</DOC>\n")

	docs := parseAll(t, NewParser("c", []string{path}))
	require.Len(t, docs, 1)
	assert.Equal(t, "", get(t, docs[0], AttrID))
	assert.Equal(t, "", get(t, docs[0], AttrType))
	assert.Equal(t, "body", docs[0].Text)
}

func TestParser_DocumentWithoutTextIsSkipped(t *testing.T) {
	content := "<DOC id=\"1\">\n<HEADLINE>x</HEADLINE>\n</DOC>\n<DOC id=\"2\">\n<TEXT>\nkept\n</TEXT>\n</DOC>\n"
	path := writeArchive(t, t.TempDir(), "a.gz", content)

	docs := parseAll(t, NewParser("c", []string{path}))
	require.Len(t, docs, 1)
	assert.Equal(t, "2", get(t, docs[0], AttrID))
}

func TestParser_MissingTextEnd(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "bad.gz", "<DOC id=\"1\">\n<TEXT>\n<P>\ntruncated\n")

	p := NewParser("c", []string{path})
	doc, err := p.ParseNext()
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrMissingTextEnd)

	var perr *core.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, 4, perr.Line)

	// sticky until Close
	_, again := p.ParseNext()
	assert.ErrorIs(t, again, ErrMissingTextEnd)

	require.NoError(t, p.Close())
	doc, err = p.ParseNext()
	assert.Nil(t, doc)
	assert.NoError(t, err)
}

func TestParser_TruncatedSecondDocument(t *testing.T) {
	content := "<DOC id=\"1\">\n<TEXT>\n<P>\ncomplete\n</P>\n</TEXT>\n</DOC>\n" +
		"<DOC id=\"2\">\n<TEXT>\n<P>\ncut off\n"
	path := writeArchive(t, t.TempDir(), "bad.gz", content)

	p := NewParser("c", []string{path})
	defer p.Close()

	ok, err := p.HasNext()
	require.NoError(t, err)
	assert.True(t, ok)

	// reading the first document runs into the broken second one
	doc, err := p.ParseNext()
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrMissingTextEnd)

	_, err = p.HasNext()
	assert.ErrorIs(t, err, ErrMissingTextEnd)
}

func TestParser_HoldsNextDocument(t *testing.T) {
	dir := t.TempDir()
	first := writeArchive(t, dir, "a.gz", twoDocs)
	last := writeArchive(t, dir, "b.gz", "<DOC id=\"3\">\n<TEXT>\nthird\n</TEXT>\n</DOC>\n")

	p := NewParser("c", []string{first, last})
	defer p.Close()

	doc, err := p.ParseNext()
	require.NoError(t, err)
	assert.Equal(t, "AFP_ENG_19940512.0004", get(t, doc, AttrID))
	require.NotNil(t, p.next)
	assert.Equal(t, "AFP_ENG_19940512.0005", get(t, p.next, AttrID))

	doc, err = p.ParseNext()
	require.NoError(t, err)
	assert.Equal(t, "AFP_ENG_19940512.0005", get(t, doc, AttrID))
	require.NotNil(t, p.next)
	assert.Equal(t, "3", get(t, p.next, AttrID))
	assert.Equal(t, last, p.path)

	// the last document leaves the parser exhausted with no archive open
	doc, err = p.ParseNext()
	require.NoError(t, err)
	assert.Equal(t, "3", get(t, doc, AttrID))
	assert.Nil(t, p.next)
	assert.Equal(t, stateExhausted, p.state)
	assert.Nil(t, p.file)
}

func TestParser_DocCloseInsideText(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "bad.gz", "<DOC id=\"1\">\n<TEXT>\nbody\n</DOC>\n")

	_, err := NewParser("c", []string{path}).ParseNext()
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrMissingTextEnd)
}

func TestParser_MissingTextBeforeEOF(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "bad.gz", "<DOC id=\"1\">\n<HEADLINE>x</HEADLINE>\n")

	_, err := NewParser("c", []string{path}).ParseNext()
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrMissingText)
}

func TestParser_DocOpenBeforeText(t *testing.T) {
	content := "<DOC id=\"1\">\n<HEADLINE>x</HEADLINE>\n<DOC id=\"2\">\n<TEXT>\nbody\n</TEXT>\n</DOC>\n"
	path := writeArchive(t, t.TempDir(), "bad.gz", content)

	doc, err := NewParser("c", []string{path}).ParseNext()
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrUnexpectedMarker)

	var perr *core.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestParser_MalformedDocMarker(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "bad.gz", "<DOC id=\"1 type=\"story\">\n<TEXT>\nx\n</TEXT>\n</DOC>\n")

	_, err := NewParser("c", []string{path}).ParseNext()
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrMalformedMarker)
}

func TestParser_LookaheadAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeArchive(t, dir, "a.gz", twoDocs)
	empty := writeArchive(t, dir, "b.gz", "no documents here\n")
	last := writeArchive(t, dir, "c.gz", "<DOC id=\"3\">\n<TEXT>\nthird\n</TEXT>\n</DOC>\n")

	p := NewParser("c", []string{first, empty, last})
	defer p.Close()

	var ids []string
	for {
		ok, err := p.HasNext()
		require.NoError(t, err)
		if !ok {
			break
		}
		// HasNext does not consume
		ok, err = p.HasNext()
		require.NoError(t, err)
		require.True(t, ok)

		doc, err := p.ParseNext()
		require.NoError(t, err)
		require.NotNil(t, doc)
		ids = append(ids, get(t, doc, AttrID))
	}
	assert.Equal(t, []string{"AFP_ENG_19940512.0004", "AFP_ENG_19940512.0005", "3"}, ids)
}

func TestParser_ExhaustionIsStable(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", twoDocs)
	p := NewParser("c", []string{path})

	parseAll(t, p)
	for range 3 {
		doc, err := p.ParseNext()
		assert.Nil(t, doc)
		assert.NoError(t, err)
	}
	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}

func TestParser_CloseMidStream(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", twoDocs)
	p := NewParser("c", []string{path})

	doc, err := p.ParseNext()
	require.NoError(t, err)
	require.NotNil(t, doc)

	require.NoError(t, p.Close())
	doc, err = p.ParseNext()
	assert.Nil(t, doc)
	assert.NoError(t, err)
}

func TestParser_Deterministic(t *testing.T) {
	path := writeArchive(t, t.TempDir(), "a.gz", twoDocs)

	first := parseAll(t, NewParser("c", []string{path}))
	second := parseAll(t, NewParser("c", []string{path}))
	assert.Equal(t, first, second)
}

func TestParser_ResourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewParser("c", []string{filepath.Join(dir, "missing.gz")}).ParseNext()
	assert.ErrorIs(t, err, core.ErrResource)

	plain := filepath.Join(dir, "plain.gz")
	require.NoError(t, os.WriteFile(plain, []byte("not gzip at all"), 0o644))
	_, err = NewParser("c", []string{plain}).ParseNext()
	assert.ErrorIs(t, err, core.ErrResource)
}

func TestParser_EmptyFileSkipped(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.gz")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	good := writeArchive(t, dir, "good.gz", twoDocs)

	docs := parseAll(t, NewParser("c", []string{empty, good}))
	assert.Len(t, docs, 2)
}

func TestParser_LineTooLong(t *testing.T) {
	content := "<DOC id=\"1\">\n<TEXT>\n" + strings.Repeat("x", 200) + "\n</TEXT>\n</DOC>\n"
	path := writeArchive(t, t.TempDir(), "a.gz", content)

	_, err := NewParser("c", []string{path}, WithMaxLineSize(64)).ParseNext()
	assert.ErrorIs(t, err, core.ErrFormat)
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestOpen_Registry(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, dir, "2/b.gz", "<DOC id=\"b\">\n<TEXT>\nb\n</TEXT>\n</DOC>\n")
	writeArchive(t, dir, "1/a.gz", "<DOC id=\"a\">\n<TEXT>\na\n</TEXT>\n</DOC>\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), 0o644))

	p, err := corpus.Open(Kind, corpus.Source{Root: dir, Label: "giga"})
	require.NoError(t, err)
	defer p.Close()

	docs, err := corpus.Collect(p)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Text)
	assert.Equal(t, "b", docs[1].Text)
	assert.Equal(t, "giga", docs[1].Corpus)
}

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no entities", "no entities"},
		{"AT&amp;T", "AT&T"},
		{"a &lt;b&gt; c", "a <b> c"},
		{"&amp;lt;", "&lt;"},
		{"&nbsp; stays", "&nbsp; stays"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEntities(tt.in))
		})
	}
}
