// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gigaword parses gzip-compressed SGML newswire archives in the
// Gigaword layout:
//
//	<DOC id="AFP_ENG_19940512.0004" type="story">
//	<HEADLINE>...</HEADLINE>
//	<TEXT>
//	<P>
//	first paragraph
//	</P>
//	</TEXT>
//	</DOC>
//
// Documents are read one at a time; memory use is bounded by the longest
// line and the decompression window, never by archive size.
package gigaword

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/corpus"
)

const (
	// Kind is the corpus kind this package registers.
	Kind = "gigaword"

	// DefaultSuffix selects archive files.
	DefaultSuffix = ".gz"

	// DefaultMaxLineSize bounds a single archive line.
	DefaultMaxLineSize = 1 << 20
)

// Attribute names set on every parsed document.
const (
	AttrID   = "id"
	AttrType = "type"
	AttrFile = "file"
)

// Markup errors, wrapped in core.ErrFormat.
var (
	ErrMissingText      = errors.New("missing <TEXT> marker")
	ErrMissingTextEnd   = errors.New("missing </TEXT> marker")
	ErrMalformedMarker  = errors.New("malformed <DOC> marker")
	ErrUnexpectedMarker = errors.New("unexpected marker")
	ErrLineTooLong      = errors.New("line exceeds maximum size")
)

const (
	docOpen   = "<DOC"
	docClose  = "</DOC>"
	textOpen  = "<TEXT>"
	textClose = "</TEXT>"
	paraOpen  = "<P>"
	paraClose = "</P>"
)

var (
	idAttr   = regexp.MustCompile(`\bid\s*=\s*"([^"]*)"`)
	typeAttr = regexp.MustCompile(`\btype\s*=\s*"([^"]*)"`)

	entities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")
)

type state int

const (
	stateNoFile state = iota
	stateScanning
	stateExhausted
)

func (s state) String() string {
	switch s {
	case stateNoFile:
		return "no-file"
	case stateScanning:
		return "scanning"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Parser streams documents out of a queue of archive files.
// It is not safe for concurrent use.
type Parser struct {
	label       string
	queue       []string
	maxLineSize int
	logger      *slog.Logger

	state   state
	path    string
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    int

	next *core.Document
	err  error
}

var _ corpus.Parser = (*Parser)(nil)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the parser's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxLineSize bounds the length of one archive line.
func WithMaxLineSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxLineSize = n
		}
	}
}

// NewParser creates a parser over files, read in the given order. Every
// document is labelled with corpus label.
func NewParser(label string, files []string, opts ...Option) *Parser {
	p := &Parser{
		label:       label,
		queue:       slices.Clone(files),
		maxLineSize: DefaultMaxLineSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "gigaword-parser")
	return p
}

// Open enumerates the archives under src.Root and returns a parser over them.
func Open(src corpus.Source, opts ...Option) (*Parser, error) {
	suffix := src.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	files, err := corpus.FindFiles(src.Root, suffix)
	if err != nil {
		return nil, err
	}
	return NewParser(src.Label, files, opts...), nil
}

func init() {
	corpus.Register(Kind, func(src corpus.Source) (corpus.Parser, error) {
		return Open(src)
	})
}

// HasNext reports whether another document is available without consuming it.
func (p *Parser) HasNext() (bool, error) {
	if err := p.fill(); err != nil {
		return false, err
	}
	return p.next != nil, nil
}

// ParseNext returns the next document, or nil once every file is consumed.
// The parser stays one document ahead of the caller: the following document
// is read before this one is returned, and if that read fails the error is
// returned in place of the document. A parse error is returned again by
// every later call until Close.
func (p *Parser) ParseNext() (*core.Document, error) {
	if err := p.fill(); err != nil {
		return nil, err
	}
	doc := p.next
	if doc == nil {
		return nil, nil
	}
	p.next = nil
	if err := p.fill(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Close releases the open archive and empties the queue. Later calls to
// ParseNext report exhaustion.
func (p *Parser) Close() error {
	p.queue = nil
	p.next = nil
	p.err = nil
	p.state = stateExhausted
	return p.closeFile()
}

// fill advances the state machine until a document is held or the queue
// is exhausted.
func (p *Parser) fill() error {
	if p.err != nil {
		return p.err
	}
	for p.next == nil && p.state != stateExhausted {
		switch p.state {
		case stateNoFile:
			if len(p.queue) == 0 {
				p.state = stateExhausted
				p.logger.Debug("corpus exhausted")
				break
			}
			path := p.queue[0]
			p.queue = p.queue[1:]
			opened, err := p.openFile(path)
			if err != nil {
				return p.fail(err)
			}
			if opened {
				p.state = stateScanning
			}
		case stateScanning:
			doc, err := p.scanDocument()
			if err != nil {
				return p.fail(err)
			}
			if doc != nil {
				p.next = doc
				break
			}
			if err := p.closeFile(); err != nil {
				return p.fail(err)
			}
			p.state = stateNoFile
		}
	}
	return nil
}

func (p *Parser) fail(err error) error {
	p.err = err
	p.next = nil
	p.state = stateExhausted
	if cerr := p.closeFile(); cerr != nil {
		p.logger.Warn("failed to close archive after error", "error", cerr)
	}
	return err
}

// openFile opens path for scanning. An empty file is skipped and reported
// as not opened.
func (p *Parser) openFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, core.ResourceError("open", path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			p.logger.Warn("skipping empty archive", "path", path)
			return false, nil
		}
		return false, core.ResourceError("decompress", path, err)
	}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, min(64*1024, p.maxLineSize)), p.maxLineSize)

	p.path = path
	p.file = f
	p.gz = gz
	p.scanner = scanner
	p.line = 0
	p.logger.Debug("opened archive", "path", path)
	return true, nil
}

func (p *Parser) closeFile() error {
	if p.file == nil {
		return nil
	}
	var errs []error
	if err := p.gz.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.file.Close(); err != nil {
		errs = append(errs, err)
	}
	path := p.path
	p.file, p.gz, p.scanner = nil, nil, nil
	p.path = ""
	p.line = 0
	if len(errs) > 0 {
		return core.ResourceError("close", path, errors.Join(errs...))
	}
	return nil
}

// readLine returns the next line without its line terminator. ok is false
// at end of file; err is set if reading failed.
func (p *Parser) readLine() (line string, ok bool, err error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, core.FormatError("read", p.path, p.line+1, ErrLineTooLong)
			}
			return "", false, core.ResourceError("read", p.path, err)
		}
		return "", false, nil
	}
	p.line++
	return strings.TrimRight(p.scanner.Text(), "\r"), true, nil
}

// scanDocument reads the next complete document of the open file. It
// returns nil, nil when the file holds no further documents.
func (p *Parser) scanDocument() (*core.Document, error) {
	for {
		header, start, err := p.seekDocOpen()
		if err != nil || header == "" {
			return nil, err
		}
		id, typ, err := p.parseDocAttrs(header, start)
		if err != nil {
			return nil, err
		}

		found, err := p.seekTextOpen(start)
		if err != nil {
			return nil, err
		}
		if !found {
			p.logger.Debug("skipping document without text", "path", p.path, "line", start, "id", id)
			continue
		}

		body, err := p.readBody(start)
		if err != nil {
			return nil, err
		}

		doc := core.NewDocument(p.label, body)
		doc.Set(AttrID, id)
		doc.Set(AttrType, typ)
		doc.Set(AttrFile, filepath.Base(p.path))
		return doc, nil
	}
}

// seekDocOpen skips to the next <DOC> line and returns it with its line
// number. An empty header means end of file.
func (p *Parser) seekDocOpen() (string, int, error) {
	for {
		line, ok, err := p.readLine()
		if !ok {
			return "", 0, err
		}
		if isDocOpen(line) {
			return line, p.line, nil
		}
	}
}

func isDocOpen(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, docOpen) {
		return false
	}
	rest := line[len(docOpen):]
	return rest == ">" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")
}

// parseDocAttrs extracts the id and type attributes of a <DOC> line.
// Either may be absent.
func (p *Parser) parseDocAttrs(header string, line int) (id, typ string, err error) {
	if strings.Count(header, `"`)%2 != 0 || !strings.HasSuffix(strings.TrimSpace(header), ">") {
		return "", "", core.FormatError("parse", p.path, line, fmt.Errorf("%w: %q", ErrMalformedMarker, header))
	}
	if m := idAttr.FindStringSubmatch(header); m != nil {
		id = m[1]
	}
	if m := typeAttr.FindStringSubmatch(header); m != nil {
		typ = m[1]
	}
	return id, typ, nil
}

// seekTextOpen skips to the <TEXT> line of the current document. It
// reports false if the document closes without one.
func (p *Parser) seekTextOpen(start int) (bool, error) {
	for {
		line, ok, err := p.readLine()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, core.FormatError("parse", p.path, p.line,
				fmt.Errorf("%w: document opened at line %d", ErrMissingText, start))
		}
		switch strings.TrimSpace(line) {
		case textOpen:
			return true, nil
		case docClose:
			return false, nil
		}
		if isDocOpen(line) {
			return false, core.FormatError("parse", p.path, p.line,
				fmt.Errorf("%w: <DOC> inside document opened at line %d", ErrUnexpectedMarker, start))
		}
	}
}

// readBody accumulates text lines up to </TEXT>. Each <P> starts a new
// paragraph with a tab; lines within a paragraph are joined by a space.
func (p *Parser) readBody(start int) (string, error) {
	var body strings.Builder
	continuing := false
	for {
		line, ok, err := p.readLine()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", core.FormatError("parse", p.path, p.line,
				fmt.Errorf("%w: document opened at line %d", ErrMissingTextEnd, start))
		}
		switch strings.TrimSpace(line) {
		case textClose:
			return body.String(), nil
		case docClose:
			return "", core.FormatError("parse", p.path, p.line,
				fmt.Errorf("%w: document opened at line %d", ErrMissingTextEnd, start))
		case paraOpen:
			body.WriteByte('\t')
			continuing = false
		case paraClose:
		default:
			if continuing {
				body.WriteByte(' ')
			}
			body.WriteString(DecodeEntities(line))
			continuing = true
		}
	}
}

// DecodeEntities replaces &amp;, &lt; and &gt; with their characters.
func DecodeEntities(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	return entities.Replace(s)
}
