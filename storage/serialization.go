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

package storage

import (
	"fmt"

	"github.com/poiesic/corpora/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalRecord serializes a Record to bytes.
func MarshalRecord(record *core.Record) []byte {
	buf := make([]byte, core.RecordMUS.Size(*record))
	core.RecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRecord deserializes a Record from bytes.
func UnmarshalRecord(data []byte) (*core.Record, error) {
	record, n, err := core.RecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &record, nil
}

// MarshalPosting serializes a Posting to bytes.
func MarshalPosting(posting *core.Posting) []byte {
	buf := make([]byte, core.PostingMUS.Size(*posting))
	core.PostingMUS.Marshal(*posting, buf)
	return buf
}

// UnmarshalPosting deserializes a Posting from bytes.
func UnmarshalPosting(data []byte) (*core.Posting, error) {
	posting, _, err := core.PostingMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &posting, nil
}

// MarshalTermVector serializes a TermVector to bytes.
func MarshalTermVector(tv *core.TermVector) []byte {
	buf := make([]byte, core.TermVectorMUS.Size(*tv))
	core.TermVectorMUS.Marshal(*tv, buf)
	return buf
}

// UnmarshalTermVector deserializes a TermVector from bytes.
func UnmarshalTermVector(data []byte) (*core.TermVector, error) {
	tv, _, err := core.TermVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &tv, nil
}

// MarshalTerm encodes a term dictionary entry as field NUL term.
func MarshalTerm(field, term string) []byte {
	buf := make([]byte, 0, len(field)+1+len(term))
	buf = append(buf, field...)
	buf = append(buf, 0)
	return append(buf, term...)
}

// UnmarshalTerm decodes a term dictionary entry.
func UnmarshalTerm(data []byte) (field, term string, err error) {
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), string(data[i+1:]), nil
		}
	}
	return "", "", fmt.Errorf("%w: missing field separator", ErrTruncatedData)
}
