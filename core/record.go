package core

import (
	"fmt"
	"slices"
)

// FieldKind describes how the index store treats a field.
type FieldKind int

const (
	// KindKeyword fields are stored and matched exactly, never tokenized.
	KindKeyword FieldKind = iota + 1
	// KindStored fields are stored as opaque bytes and not searchable.
	KindStored
	// KindText fields are tokenized for search and stored.
	KindText
)

func (k FieldKind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindStored:
		return "stored"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Field is one named value of an index record. Positions and TermVector only
// apply to KindText fields.
type Field struct {
	Name       string
	Kind       FieldKind
	Value      []byte
	Positions  bool
	TermVector bool
}

// Record is the storage-level representation of a Document.
type Record struct {
	Fields []Field
}

// Field returns the first field named name.
func (r *Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Posting records the occurrences of one term in one document. Positions,
// Starts and Ends are only populated for fields indexed with positions.
type Posting struct {
	DocID     ID
	Freq      int
	Positions []int
	Starts    []int
	Ends      []int
}

// TermVector lists the terms of one field of one document, sorted by term.
type TermVector struct {
	Field string
	Terms []TermVectorEntry
}

// TermVectorEntry is one term of a TermVector.
type TermVectorEntry struct {
	Term      string
	Freq      int
	Positions []int
}

// ToIndexRecord converts d into a Record. The corpus label becomes a keyword
// field, string attributes become stored fields in name order, the annotation
// becomes a stored blob named "nlp", and the text becomes a tokenized field
// whose positional postings and term vector are controlled by storePostings
// and storeTermVector.
func (d *Document) ToIndexRecord(codec AnnotationCodec, storePostings, storeTermVector bool) (*Record, error) {
	rec := &Record{Fields: make([]Field, 0, len(d.Attributes)+2)}
	rec.Fields = append(rec.Fields, Field{Name: CorpusKey, Kind: KindKeyword, Value: []byte(d.Corpus)})

	names := make([]string, 0, len(d.Attributes))
	for name := range d.Attributes {
		names = append(names, name)
	}
	slices.Sort(names)

	var nlp []byte
	for _, name := range names {
		switch v := d.Attributes[name].(type) {
		case StringValue:
			if name == CorpusKey || name == TextKey || name == AnnotationKey {
				return nil, fmt.Errorf("%w: %q", ErrReservedName, name)
			}
			rec.Fields = append(rec.Fields, Field{Name: name, Kind: KindStored, Value: []byte(v)})
		case AnnotationValue:
			if name != AnnotationKey {
				return nil, fmt.Errorf("%w: found under %q", ErrMisplacedAnnotation, name)
			}
			if v.Annotation == nil {
				continue
			}
			if codec == nil {
				return nil, ErrNoCodec
			}
			data, err := codec.Encode(v.Annotation)
			if err != nil {
				return nil, fmt.Errorf("encoding annotation: %w", err)
			}
			nlp = data
		default:
			return nil, fmt.Errorf("unsupported attribute value %T for %q", v, name)
		}
	}

	if nlp != nil {
		rec.Fields = append(rec.Fields, Field{Name: AnnotationKey, Kind: KindStored, Value: nlp})
	}
	rec.Fields = append(rec.Fields, Field{
		Name:       TextKey,
		Kind:       KindText,
		Value:      []byte(d.Text),
		Positions:  storePostings,
		TermVector: storeTermVector,
	})
	return rec, nil
}

// FromIndexRecord reconstructs a Document from a stored Record. When the
// record carries no text field but does carry an annotation, the text is
// rebuilt from the annotation's tokens.
func FromIndexRecord(rec *Record, codec AnnotationCodec) (*Document, error) {
	doc := &Document{Attributes: make(map[string]Value, len(rec.Fields))}
	hasText := false
	for _, f := range rec.Fields {
		switch f.Name {
		case CorpusKey:
			doc.Corpus = string(f.Value)
		case TextKey:
			doc.Text = string(f.Value)
			hasText = true
		case AnnotationKey:
			if codec == nil {
				return nil, ErrNoCodec
			}
			ann, err := codec.Decode(f.Value)
			if err != nil {
				return nil, fmt.Errorf("decoding annotation: %w", err)
			}
			doc.SetAnnotation(ann)
		default:
			doc.Attributes[f.Name] = StringValue(f.Value)
		}
	}
	if !hasText {
		if ann := doc.Annotation(); ann != nil {
			doc.Text = ann.Text()
		}
	}
	return doc, nil
}
