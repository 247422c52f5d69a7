package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cockroachdb/pebble"

	"fedisync/pkg/logger"
)

var (
	db     *pebble.DB
	dbPath string
)

// ErrNotFound is returned when an entity does not exist under its key.
var ErrNotFound = errors.New("store: not found")

// Open opens (or creates) a Pebble database at the given path and keeps a
// global handle for simple usage in this package.
func Open(path string) error {
	var err error
	logger.Log.Info("opening_pebble_db", zap.String("path", path))
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Log.Error("pebble_open_failed", zap.String("path", path), zap.Error(err))
		return err
	}
	dbPath = path
	logger.Log.Info("pebble_opened", zap.String("path", path))
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Log.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// NewBatch returns an indexed batch so reads issued during a reconcile
// pass observe earlier writes from the same transaction.
func NewBatch() (*pebble.Batch, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	return db.NewIndexedBatch(), nil
}

// Commit applies a batch durably. Callers that must not surface
// persistence failures (the vote coordinator) log the returned error and
// carry on with in-memory state.
func Commit(b *pebble.Batch) error {
	if err := b.Commit(pebble.Sync); err != nil {
		logger.Log.Error("batch_commit_failed", zap.Error(err))
		return err
	}
	return nil
}

func getJSON(key []byte, out any) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	return json.Unmarshal(v, out)
}

func putJSON(b *pebble.Batch, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return b.Set(key, data, nil)
}

// setJSON writes a single value outside any caller-owned batch.
func setJSON(key []byte, v any) error {
	b, err := NewBatch()
	if err != nil {
		return err
	}
	defer b.Close()
	if err := putJSON(b, key, v); err != nil {
		return err
	}
	return Commit(b)
}

// iterPrefix walks all keys with the given prefix in key order, invoking
// fn with each value. fn must not retain the value slice.
func iterPrefix(prefix []byte, fn func(key, value []byte) error) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// CountPrefix returns the number of keys under a raw prefix. Used by the
// status endpoints.
func CountPrefix(prefix string) (int, error) {
	n := 0
	err := iterPrefix([]byte(prefix), func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}
