package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCache is the embedded cache backend. An empty path opens an
// in-memory database, which is what tests use.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerCache opens the cache database at path with the given entry TTL.
func NewBadgerCache(path string, ttl time.Duration) (*BadgerCache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerCache{db: db, ttl: ttl}, nil
}

// Get returns the cached value for key, or false when absent or expired.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false
	}
	if err != nil {
		slog.Error("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return value, true
}

// Set stores value under key with the cache TTL.
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(c.ttl))
	})
}

// Clear drops every cached entry.
func (c *BadgerCache) Clear(ctx context.Context) error {
	return c.db.DropAll()
}

// Close closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
