package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/storage"
)

// Reader implements storage.IndexReader on a Backend.
type Reader struct {
	backend *Backend
	ownsDB  bool
}

var _ storage.IndexReader = (*Reader)(nil)

// OpenReader opens the index at path read-only.
func OpenReader(path string) (storage.IndexReader, error) {
	backend, err := OpenBackend(path, BackendOptions{ReadOnly: true})
	if err != nil {
		return nil, core.PersistenceError("open", path, err)
	}
	return &Reader{backend: backend, ownsDB: true}, nil
}

// NewReader creates a reader on an already open backend. The caller keeps
// ownership of the backend.
func NewReader(backend *Backend) storage.IndexReader {
	return &Reader{backend: backend}
}

// Close closes the database if the reader owns it.
func (r *Reader) Close() error {
	if !r.ownsDB || r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}

func (r *Reader) checkOpen() error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// NumDocs counts stored records.
func (r *Reader) NumDocs(ctx context.Context) (int, error) {
	if err := r.checkOpen(); err != nil {
		return 0, err
	}
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
			if count%10000 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		}
		return nil
	}, false)
	return count, err
}

// Record retrieves a stored record by document ID.
func (r *Reader) Record(ctx context.Context, id core.ID) (*core.Record, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var rec *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			rec, err = storage.UnmarshalRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Scan returns up to limit records with IDs greater than after.
func (r *Reader) Scan(ctx context.Context, after core.ID, limit int) ([]storage.StoredRecord, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	var results []storage.StoredRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(docPrefix)
		opts.PrefetchSize = min(limit, 100)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeDocKey(after + 1)); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			id := docIDFromKey(item.Key())
			// after+1 wraps to 0 at the maximum ID
			if id <= after {
				continue
			}
			var rec *core.Record
			err := item.Value(func(val []byte) error {
				var err error
				rec, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, storage.StoredRecord{ID: id, Record: rec})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Postings returns the postings of term in field, ordered by document ID.
func (r *Reader) Postings(ctx context.Context, field, term string) ([]core.Posting, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	postings := []core.Posting{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialPostingKey(termID(field, term))
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				p, err := storage.UnmarshalPosting(val)
				if err != nil {
					return err
				}
				postings = append(postings, *p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

// DocFreq counts the documents containing term in field.
func (r *Reader) DocFreq(ctx context.Context, field, term string) (int, error) {
	if err := r.checkOpen(); err != nil {
		return 0, err
	}
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialPostingKey(termID(field, term))
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return ctx.Err()
	}, false)
	return count, err
}

// TermVector returns the stored term vector of field in document id.
func (r *Reader) TermVector(ctx context.Context, id core.ID, field string) (*core.TermVector, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	var tv *core.TermVector
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTermVectorKey(id, field))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			tv, err = storage.UnmarshalTermVector(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return tv, nil
}
