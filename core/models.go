package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for index entities.
// Document IDs come from a database sequence; term IDs are content hashes.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Reserved attribute and field names.
const (
	AnnotationKey = "nlp"
	CorpusKey     = "corpus"
	TextKey       = "text"
)

// Value is an attribute value carried by a Document. It is either a
// StringValue or an AnnotationValue; no other implementations exist.
type Value interface {
	attributeValue()
}

// StringValue is a plain metadata string such as a document id or type.
type StringValue string

func (StringValue) attributeValue() {}

// AnnotationValue wraps a linguistic annotation produced by enrichment.
type AnnotationValue struct {
	Annotation *Annotation
}

func (AnnotationValue) attributeValue() {}

// Document is one unit of text recovered from a corpus archive.
type Document struct {
	Text       string
	Corpus     string
	Attributes map[string]Value
}

// NewDocument creates a Document with an empty attribute map.
func NewDocument(corpus, text string) *Document {
	return &Document{
		Text:       text,
		Corpus:     corpus,
		Attributes: make(map[string]Value),
	}
}

// Set stores a string attribute.
func (d *Document) Set(key, value string) {
	if d.Attributes == nil {
		d.Attributes = make(map[string]Value)
	}
	d.Attributes[key] = StringValue(value)
}

// Get returns a string attribute and whether it was present as a string.
func (d *Document) Get(key string) (string, bool) {
	v, ok := d.Attributes[key].(StringValue)
	return string(v), ok
}

// SetAnnotation stores ann under AnnotationKey, replacing any previous annotation.
func (d *Document) SetAnnotation(ann *Annotation) {
	if d.Attributes == nil {
		d.Attributes = make(map[string]Value)
	}
	d.Attributes[AnnotationKey] = AnnotationValue{Annotation: ann}
}

// Annotation returns the document's annotation, or nil if it has none.
func (d *Document) Annotation() *Annotation {
	v, ok := d.Attributes[AnnotationKey].(AnnotationValue)
	if !ok {
		return nil
	}
	return v.Annotation
}

// Annotation is a structured linguistic analysis of a document's text.
type Annotation struct {
	Sentences []Sentence
	Coref     []CorefChain
}

// Sentence holds the tokens of one sentence and its optional syntax.
type Sentence struct {
	Tokens       []Token
	Parse        string
	Dependencies []Dependency
}

// Token is one word of a sentence. Begin and End are byte offsets into the
// document text, or -1 when unknown.
type Token struct {
	Word  string
	Lemma string
	POS   string
	NER   string
	Begin int
	End   int
}

// Dependency is a typed arc between two 1-based token indices. A Governor of 0
// denotes the root.
type Dependency struct {
	Relation  string
	Governor  int
	Dependent int
}

// CorefChain groups mentions referring to the same entity.
type CorefChain struct {
	Mentions []Mention
}

// Mention is a span of tokens [Start, End) in a sentence.
type Mention struct {
	Sentence       int
	Start          int
	End            int
	Head           int
	Text           string
	Representative bool
}

// TokenCount returns the number of tokens across all sentences.
func (a *Annotation) TokenCount() int {
	n := 0
	for _, s := range a.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Text rebuilds approximate text from the annotation: the words of each
// sentence joined by single spaces, one sentence per line. Original spacing
// and paragraph markers are lost.
func (a *Annotation) Text() string {
	var sb strings.Builder
	for i, s := range a.Sentences {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, tok := range s.Tokens {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(tok.Word)
		}
	}
	return sb.String()
}

// AnnotationCodec converts annotations to and from opaque bytes for storage.
type AnnotationCodec interface {
	Encode(ann *Annotation) ([]byte, error)
	Decode(data []byte) (*Annotation, error)
}
