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

package core

import (
	"errors"
	"fmt"
)

// Error categories. Every pipeline failure matches exactly one of these via errors.Is.
var (
	// ErrResource indicates a file could not be opened, read, or decompressed.
	ErrResource = errors.New("resource error")

	// ErrFormat indicates malformed archive markup.
	ErrFormat = errors.New("format error")

	// ErrAnnotation indicates the annotation engine failed on a document.
	ErrAnnotation = errors.New("annotation error")

	// ErrPersistence indicates the index store rejected a write, merge, or close.
	ErrPersistence = errors.New("persistence error")
)

// Record conversion errors
var (
	// ErrReservedName indicates an attribute uses a reserved field name.
	ErrReservedName = errors.New("reserved attribute name")

	// ErrMisplacedAnnotation indicates an annotation stored under a key other than "nlp".
	ErrMisplacedAnnotation = errors.New("annotation must be stored under \"nlp\"")

	// ErrNoCodec indicates an annotation was present but no codec was supplied.
	ErrNoCodec = errors.New("annotation codec required")
)

// Kind classifies an Error.
type Kind int

const (
	KindResource Kind = iota + 1
	KindFormat
	KindAnnotation
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindFormat:
		return "format"
	case KindAnnotation:
		return "annotation"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindResource:
		return ErrResource
	case KindFormat:
		return ErrFormat
	case KindAnnotation:
		return ErrAnnotation
	case KindPersistence:
		return ErrPersistence
	default:
		return nil
	}
}

// Error is a classified pipeline failure. Path and Line locate the failure
// in an archive when known.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		if e.Line > 0 {
			msg += fmt.Sprintf(" at %s:%d", e.Path, e.Line)
		} else {
			msg += " at " + e.Path
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the category sentinel for the error's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// ResourceError reports an I/O or decompression failure on path.
func ResourceError(op, path string, err error) error {
	return &Error{Kind: KindResource, Op: op, Path: path, Err: err}
}

// FormatError reports malformed markup at path:line.
func FormatError(op, path string, line int, err error) error {
	return &Error{Kind: KindFormat, Op: op, Path: path, Line: line, Err: err}
}

// AnnotationError reports an engine failure.
func AnnotationError(op string, err error) error {
	return &Error{Kind: KindAnnotation, Op: op, Err: err}
}

// PersistenceError reports an index store failure.
func PersistenceError(op, path string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
