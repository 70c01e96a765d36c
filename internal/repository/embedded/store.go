// Package embedded stores the workspace in BadgerDB so the service runs
// without a database server. Records are CBOR-encoded; secondary indexes are
// empty-valued keys and every cascade is an explicit fan-out inside one txn.
package embedded

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"notebook/internal/domain"
	"notebook/internal/domain/repositories"
)

// sequenceBandwidth is how many ids each sequence leases at a time
const sequenceBandwidth = 100

// Options configures Open
type Options struct {
	// Dir is the data directory; ignored when InMemory is set
	Dir      string
	InMemory bool
	Logger   *slog.Logger
}

// Store wraps a badger database and the id sequences of each entity
type Store struct {
	db     *badger.DB
	seqs   map[string]*badger.Sequence
	logger *slog.Logger
}

// Open opens (or creates) the badger database described by opts
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Dir)
	}
	bopts = bopts.WithLogger(&badgerLogger{logger: logger.With("component", "badger")})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &Store{
		db:     db,
		seqs:   make(map[string]*badger.Sequence),
		logger: logger,
	}

	for _, name := range []string{seqUsers, seqFolders, seqDocuments, seqBlocks} {
		seq, err := db.GetSequence([]byte(name), sequenceBandwidth)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("sequence %s: %w", name, err)
		}
		s.seqs[name] = seq
	}

	return s, nil
}

// Close releases leased ids and closes the database
func (s *Store) Close() error {
	for name, seq := range s.seqs {
		if err := seq.Release(); err != nil {
			s.logger.Warn("release sequence", "sequence", name, "error", err)
		}
	}
	return s.db.Close()
}

// nextID returns the next id of a sequence. Ids start at 1 and are never reused,
// even when the surrounding transaction rolls back.
func (s *Store) nextID(name string) (int64, error) {
	n, err := s.seqs[name].Next()
	if err != nil {
		return 0, domain.NewStorage("next id", err)
	}
	return int64(n) + 1, nil
}

// update runs fn in the context's transaction, or in a fresh read-write one
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := repositories.TxFrom[*badger.Txn](ctx); ok {
		return fn(txn)
	}
	return s.db.Update(fn)
}

// view runs fn in the context's transaction, or in a fresh read-only one
func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := repositories.TxFrom[*badger.Txn](ctx); ok {
		return fn(txn)
	}
	return s.db.View(fn)
}

// now matches the microsecond precision of TIMESTAMPTZ and strips the monotonic reading
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func getRecord(txn *badger.Txn, k []byte, dest interface{}) error {
	item, err := txn.Get(k)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return decode(val, dest)
	})
}

func putRecord(txn *badger.Txn, k []byte, v interface{}) error {
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return txn.Set(k, data)
}

// prefixIDs collects the trailing ids of every key under prefix.
// The iterator is closed before returning so callers may write afterwards.
func prefixIDs(txn *badger.Txn, prefix []byte) []int64 {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []int64
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		ids = append(ids, trailingID(it.Item().Key()))
	}
	return ids
}

// requireRef stands in for a foreign key: the referenced record must exist.
// Badger only checks conflicts on keys a transaction read, so reading the
// record catches a delete that commits first, and the blind write to its
// guard key catches a delete that started first (see releaseGuard). Blind
// writes do not conflict with each other, so concurrent inserts under the
// same parent still commit.
func requireRef(txn *badger.Txn, k []byte, field string, id int64) error {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.NewReferenceInvalid(field, id)
	}
	if err != nil {
		return err
	}
	return txn.Set(guardKey(k), nil)
}

// releaseGuard reads and removes the guard of a record being deleted. Any
// reference written after this transaction started makes its commit fail.
func releaseGuard(txn *badger.Txn, recordKey []byte) error {
	g := guardKey(recordKey)
	if _, err := txn.Get(g); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return txn.Delete(g)
}

// storageErr maps badger errors onto domain errors
func storageErr(op, resource string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.NewNotFound(resource, id)
	}
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}
	return domain.NewStorage(op, err)
}

// badgerLogger routes badger's printf-style logging into slog
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// ClearData removes every record and index entry. Sequences are kept so ids
// are not reused after a clear.
func (s *Store) ClearData() error {
	prefixes := [][]byte{
		[]byte(prefixUser),
		[]byte(prefixFolder),
		[]byte(prefixDocument),
		[]byte(prefixBlock),
		[]byte("x:"),
		[]byte(prefixGuard),
	}
	if err := s.db.DropPrefix(prefixes...); err != nil {
		return domain.NewStorage("clear data", err)
	}
	s.logger.Info("embedded store cleared")
	return nil
}
