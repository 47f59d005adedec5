package storage

import (
	"context"
	"fmt"

	"github.com/poiesic/corpora/core"
)

// OpenMode selects what happens to existing index content when a writer opens.
type OpenMode int

const (
	// ModeCreate discards any existing index content.
	ModeCreate OpenMode = iota + 1
	// ModeCreateOrAppend keeps existing content and adds to it.
	ModeCreateOrAppend
)

func (m OpenMode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeCreateOrAppend:
		return "create-or-append"
	default:
		return "unknown"
	}
}

// ParseOpenMode converts "create" or "append" into an OpenMode.
func ParseOpenMode(s string) (OpenMode, error) {
	switch s {
	case "create":
		return ModeCreate, nil
	case "append", "create-or-append":
		return ModeCreateOrAppend, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// WriterOptions configures an IndexWriter.
type WriterOptions struct {
	Mode OpenMode
	// BufferSizeMB bounds the in-memory write buffer before it is flushed.
	BufferSizeMB int
}

// StoredRecord pairs a record with its document ID.
type StoredRecord struct {
	ID     core.ID
	Record *core.Record
}

// IndexWriter appends records to an index store. Only one writer may hold a
// given index at a time.
type IndexWriter interface {
	// AddRecord appends a record and returns its document ID.
	// Text fields are tokenized; postings and term vectors are written
	// according to the field flags.
	AddRecord(ctx context.Context, rec *core.Record) (core.ID, error)

	// ForceMerge flushes pending writes and compacts the store to a single
	// segment.
	ForceMerge(ctx context.Context) error

	// NumDocs returns the number of records added by this writer.
	NumDocs() int

	// Close flushes pending writes and releases the store.
	Close() error
}

// IndexReader provides read access to a committed index.
// Implementations must be thread-safe.
type IndexReader interface {
	// NumDocs returns the number of stored records.
	NumDocs(ctx context.Context) (int, error)

	// Record retrieves a stored record by document ID.
	// Returns ErrNotFound if the record doesn't exist.
	Record(ctx context.Context, id core.ID) (*core.Record, error)

	// Scan returns up to limit records with IDs greater than after, in
	// document ID order. An empty result means the scan is complete.
	Scan(ctx context.Context, after core.ID, limit int) ([]StoredRecord, error)

	// Postings returns the postings of term in field, ordered by document ID.
	// Returns an empty slice if the term is unknown.
	Postings(ctx context.Context, field, term string) ([]core.Posting, error)

	// DocFreq returns the number of documents containing term in field.
	DocFreq(ctx context.Context, field, term string) (int, error)

	// TermVector returns the term vector of field in document id.
	// Returns ErrNotFound if none was stored.
	TermVector(ctx context.Context, id core.ID, field string) (*core.TermVector, error)

	// Close releases the store.
	Close() error
}
