package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

const (
	defaultSequenceBandwidth = 100

	// Badger requires the memtable to be large enough to hold its value
	// threshold several times over.
	minMemTableMB = 8

	gcDiscardRatio = 0.5
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	path   string
	opts   BackendOptions
	logger *slog.Logger
}

// BackendOptions controls how a Backend is opened.
type BackendOptions struct {
	InMemory   bool
	ReadOnly   bool
	MemTableMB int
	Logger     *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist, unless opening read-only.
func OpenBackend(filePath string, bo BackendOptions) (*Backend, error) {
	var opts badger.Options

	logger := bo.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if bo.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if !os.IsNotExist(err) || bo.ReadOnly {
				return nil, err
			}
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(filePath)
			if err != nil {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath).WithReadOnly(bo.ReadOnly)
	}

	if bo.MemTableMB > 0 {
		opts = opts.WithMemTableSize(int64(max(bo.MemTableMB, minMemTableMB)) << 20)
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger.With("component", "badger")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		path:   filePath,
		opts:   bo,
		logger: logger,
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// Path returns the directory the backend was opened on, or "" in memory.
func (b *Backend) Path() string {
	return b.path
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// GetSequence returns a BadgerDB sequence for generating sequential IDs.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), defaultSequenceBandwidth)
}

// NewWriteBatch starts a batch that commits in as many transactions as needed.
func (b *Backend) NewWriteBatch() *badger.WriteBatch {
	return b.db.NewWriteBatch()
}

// DropAll removes every key from the database.
func (b *Backend) DropAll() error {
	return b.db.DropAll()
}

// Compact garbage collects the value log, then flattens every table into a
// single LSM level. Flatten only moves tables that are already on disk, so an
// on-disk database is reopened first to flush its memtable into level 0.
// Writes made after Compact land in a fresh memtable and are flushed to level
// 0 on Close.
func (b *Backend) Compact() error {
	if err := b.collectValueLog(); err != nil {
		return err
	}
	if !b.opts.InMemory {
		if err := b.reopen(); err != nil {
			return fmt.Errorf("reopen: %w", err)
		}
	}
	if err := b.db.Flatten(runtime.NumCPU()); err != nil {
		return fmt.Errorf("flatten: %w", err)
	}
	b.logger.Debug("lsm flattened", "levels", b.TableLevels())
	return nil
}

// collectValueLog runs value log GC until no file is rewritten.
func (b *Backend) collectValueLog() error {
	for rewrites := 0; ; rewrites++ {
		err := b.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			b.logger.Debug("value log compacted", "rewrites", rewrites)
			return nil
		default:
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}

// reopen closes the database, which writes any buffered memtable out as a
// level 0 table, and opens it again with the same options.
func (b *Backend) reopen() error {
	if err := b.db.Close(); err != nil {
		return err
	}
	reopened, err := OpenBackend(b.path, b.opts)
	if err != nil {
		return err
	}
	b.db = reopened.db
	return nil
}

// TableLevels returns the number of SST tables on each LSM level that
// holds at least one table.
func (b *Backend) TableLevels() map[int]int {
	levels := make(map[int]int)
	for _, t := range b.db.Tables() {
		levels[t.Level]++
	}
	return levels
}

// Size returns the LSM and value log sizes in bytes.
func (b *Backend) Size() (lsm, vlog int64) {
	return b.db.Size()
}
