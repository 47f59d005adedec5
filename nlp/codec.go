package nlp

import (
	"errors"
	"fmt"

	"github.com/poiesic/corpora/core"
)

// codecVersion prefixes every encoded annotation.
const codecVersion byte = 1

var (
	// ErrUnsupportedVersion indicates an annotation written by an unknown codec version.
	ErrUnsupportedVersion = errors.New("unsupported annotation encoding version")

	// ErrCorruptAnnotation indicates encoded annotation bytes could not be decoded.
	ErrCorruptAnnotation = errors.New("corrupt annotation encoding")
)

// MUSCodec stores annotations in the MUS binary format behind a one-byte
// version prefix.
type MUSCodec struct{}

var _ core.AnnotationCodec = MUSCodec{}

// Encode serializes ann.
func (MUSCodec) Encode(ann *core.Annotation) ([]byte, error) {
	if ann == nil {
		return nil, fmt.Errorf("%w: nil annotation", ErrCorruptAnnotation)
	}
	buf := make([]byte, 1+core.AnnotationMUS.Size(*ann))
	buf[0] = codecVersion
	core.AnnotationMUS.Marshal(*ann, buf[1:])
	return buf, nil
}

// Decode deserializes data produced by Encode.
func (MUSCodec) Decode(data []byte) (*core.Annotation, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrCorruptAnnotation)
	}
	if data[0] != codecVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	ann, n, err := core.AnnotationMUS.Unmarshal(data[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptAnnotation, err)
	}
	if n != len(data)-1 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptAnnotation, len(data)-1-n)
	}
	return &ann, nil
}
