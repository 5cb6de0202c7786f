// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const graphPrefix = "graph:"

// BadgerStore persists graph records in a badger key-value database.
// Keys are "graph:<id>", values are JSON.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger store at path. An empty path opens
// an in-memory database, used by tests and the ephemeral backend.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

func (s *BadgerStore) Put(ctx context.Context, rec *GraphRecord) error {
	key := []byte(graphPrefix + rec.ID)
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal graph %s: %w", rec.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
}

func (s *BadgerStore) Get(ctx context.Context, id string) (*GraphRecord, error) {
	key := []byte(graphPrefix + id)
	var out GraphRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	key := []byte(graphPrefix + id)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (s *BadgerStore) List(ctx context.Context) ([]*GraphRecord, error) {
	var list []*GraphRecord
	err := s.Scan(ctx, func(r *GraphRecord) error {
		list = append(list, r)
		return nil
	})
	return list, err
}

func (s *BadgerStore) Scan(ctx context.Context, fn func(*GraphRecord) error) error {
	prefix := []byte(graphPrefix)
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			item := it.Item()
			var rec GraphRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("store: decode %s: %w", item.Key(), err)
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Ensure interface compliance at compile time.
var _ Store = (*BadgerStore)(nil)
