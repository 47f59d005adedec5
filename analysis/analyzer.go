// Package analysis turns document text into positioned search tokens.
package analysis

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Token is one search term occurrence. Start and End are byte offsets into
// the analyzed text; Position counts words, including removed stopwords.
type Token struct {
	Term     string
	Position int
	Start    int
	End      int
}

// Analyzer splits text into lowercase letter/digit runs. A hyphen or
// apostrophe joins two runs ("long-term", "don't").
type Analyzer struct {
	stopwords map[string]struct{}
}

// NewAnalyzer creates an analyzer that drops the given stopwords.
func NewAnalyzer(stopwords []string) *Analyzer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Analyzer{stopwords: stops}
}

// Analyze tokenizes text.
func (a *Analyzer) Analyze(text string) []Token {
	var tokens []Token
	pos := 0
	start := -1

	emit := func(end int) {
		term := strings.ToLower(text[start:end])
		if !a.IsStopword(term) {
			tokens = append(tokens, Token{Term: term, Position: pos, Start: start, End: end})
		}
		pos++
		start = -1
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && (r == '-' || r == '\'') {
			next, _ := utf8.DecodeRuneInString(text[i+utf8.RuneLen(r):])
			if isWordRune(next) {
				continue
			}
		}
		if start >= 0 {
			emit(i)
		}
	}
	if start >= 0 {
		emit(len(text))
	}
	return tokens
}

// IsStopword reports whether term is on the stoplist.
func (a *Analyzer) IsStopword(term string) bool {
	_, ok := a.stopwords[term]
	return ok
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Stoplist is the YAML stopword file format.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
