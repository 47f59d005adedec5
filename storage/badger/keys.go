package badger

import (
	"encoding/binary"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/storage"
)

// Key prefixes for different data types
const (
	docPrefix        = "doc:"
	termPrefix       = "trm:"
	postingPrefix    = "pst:"
	termVectorPrefix = "tvc:"
	docIDSeq         = "docseq"
)

// termID identifies a (field, term) pair.
func termID(field, term string) core.ID {
	return core.IDFromContent(string(storage.MarshalTerm(field, term)))
}

// makeIDKey writes prefix followed by big-endian ids so that keys sort by id.
func makeIDKey(prefix string, ids ...core.ID) []byte {
	buf := make([]byte, len(prefix)+8*len(ids))
	offset := copy(buf, prefix)
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[offset:], uint64(id))
		offset += 8
	}
	return buf
}

// makeDocKey generates a key for a stored record by document ID.
func makeDocKey(id core.ID) []byte {
	return makeIDKey(docPrefix, id)
}

// docIDFromKey extracts the document ID from a doc key.
func docIDFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(docPrefix):]))
}

// makeTermKey generates a key for a term dictionary entry.
func makeTermKey(tid core.ID) []byte {
	return makeIDKey(termPrefix, tid)
}

// makePostingKey generates a composite key for a posting.
// Format: prefix:termID:docID
func makePostingKey(tid, docID core.ID) []byte {
	return makeIDKey(postingPrefix, tid, docID)
}

// makePartialPostingKey generates the prefix of every posting of a term.
// Format: prefix:termID
func makePartialPostingKey(tid core.ID) []byte {
	return makeIDKey(postingPrefix, tid)
}

// makeTermVectorKey generates a key for the term vector of one field.
// Format: prefix:docID:field
func makeTermVectorKey(docID core.ID, field string) []byte {
	return append(makeIDKey(termVectorPrefix, docID), field...)
}
