// Package basic provides a rule-based annotation engine that segments text
// into sentences and tokens without tagging them.
package basic

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/nlp"
)

// abbreviations never end a sentence when followed by a period.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "st": {}, "jr": {}, "sr": {},
	"gen": {}, "gov": {}, "sen": {}, "rep": {}, "lt": {}, "col": {}, "sgt": {},
	"inc": {}, "corp": {}, "co": {}, "ltd": {}, "vs": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "aug": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
}

// Segmenter splits text into sentences of word and punctuation tokens.
// Tab and newline characters always end a sentence. Token offsets are byte
// offsets into the input.
type Segmenter struct{}

var _ nlp.Annotator = Segmenter{}

// Annotate segments text. It only fails if ctx is done.
func (Segmenter) Annotate(ctx context.Context, text string) (*core.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Segment(text), nil
}

// Segment splits text into sentences.
func Segment(text string) *core.Annotation {
	ann := &core.Annotation{}
	var current []core.Token

	endSentence := func() {
		if len(current) > 0 {
			ann.Sentences = append(ann.Sentences, core.Sentence{Tokens: current})
			current = nil
		}
	}

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			endSentence()
			i += size
		case unicode.IsSpace(r):
			i += size
		case isWordRune(r):
			end := scanWord(text, i)
			current = append(current, core.Token{Word: text[i:end], Begin: i, End: end})
			i = end
		default:
			end := i + size
			// runs of the same mark form one token ("...", "--")
			for end < len(text) {
				next, n := utf8.DecodeRuneInString(text[end:])
				if next != r {
					break
				}
				end += n
			}
			current = append(current, core.Token{Word: text[i:end], Begin: i, End: end})
			if isTerminal(r) && atBoundary(text, end) && !abbreviated(current) {
				for end < len(text) && strings.IndexByte(closers, text[end]) >= 0 {
					current = append(current, core.Token{Word: text[end : end+1], Begin: end, End: end + 1})
					end++
				}
				endSentence()
			}
			i = end
		}
	}
	endSentence()
	return ann
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// scanWord returns the end of the word starting at start. Hyphens and
// apostrophes join letters; periods and commas join digits ("3.5", "1,000").
func scanWord(text string, start int) int {
	end := start
	prevDigit := false
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			prevDigit = unicode.IsDigit(r)
			end += size
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[end+size:])
		joins := (r == '-' || r == '\'') && isWordRune(next) ||
			(r == '.' || r == ',') && prevDigit && unicode.IsDigit(next)
		if !joins {
			break
		}
		end += size
	}
	return end
}

// closers may follow sentence-final punctuation and belong to the sentence.
const closers = "\"')]"

// atBoundary reports whether offset is followed by whitespace, a closing
// quote or bracket and then whitespace, or the end of text.
func atBoundary(text string, offset int) bool {
	rest := strings.TrimLeft(text[offset:], closers)
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}

// abbreviated reports whether the period just appended follows an
// abbreviation or a single-letter initial.
func abbreviated(tokens []core.Token) bool {
	n := len(tokens)
	if n < 2 || tokens[n-1].Word != "." || tokens[n-2].End != tokens[n-1].Begin {
		return false
	}
	prev := tokens[n-2].Word
	if utf8.RuneCountInString(prev) == 1 {
		r, _ := utf8.DecodeRuneInString(prev)
		return unicode.IsUpper(r)
	}
	_, ok := abbreviations[strings.ToLower(prev)]
	return ok
}

// Provider implements nlp.Provider with the Segmenter.
type Provider struct {
	segmenter Segmenter
	codec     nlp.MUSCodec
}

// NewProvider creates a rule-based provider.
func NewProvider() nlp.Provider {
	return &Provider{}
}

// Annotator returns the segmenter.
func (p *Provider) Annotator() nlp.Annotator {
	return p.segmenter
}

// Codec returns the MUS annotation codec.
func (p *Provider) Codec() core.AnnotationCodec {
	return p.codec
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
