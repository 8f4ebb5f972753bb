// Package cache implements the durable local cache: a typed JSON key-value
// shim over Badger. It knows nothing about entity semantics; every value is
// written whole under its key and read back whole.
package cache

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Load when the key is absent or its value cannot
// be decoded. Corrupt values are deliberately indistinguishable from missing
// ones: callers fall through to the next data tier either way.
var ErrNotFound = errors.New("cache: key not found")

// Cache wraps a Badger database instance.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the cache at the given directory.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Mutations must be durable before control returns to the caller
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("local cache opened", "path", path)
	}

	return &Cache{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (c *Cache) Close() error {
	if c.logger != nil {
		c.logger.Info("closing local cache")
	}
	return c.db.Close()
}

// Load reads and decodes the value under key into dest.
// Absence and parse failure both come back as ErrNotFound; Load never
// surfaces a decode error to the caller.
func (c *Cache) Load(key string, dest any) error {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		// Present but unreadable. Treat as absent so the caller falls
		// through to the seed tier, but leave a trace for diagnosis.
		if c.logger != nil {
			c.logger.Warn("cached value unreadable, treating as missing", "key", key, "error", err)
		}
		return ErrNotFound
	}
	return nil
}

// Save encodes value and overwrites the full entry under key.
// Whole-value replacement; there is no partial merge.
func (c *Cache) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Delete removes a key. Idempotent.
func (c *Cache) Delete(key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Stats describes the cache for the admin surface.
type Stats struct {
	Keys     int   `json:"keys"`
	LSMBytes int64 `json:"lsm_bytes"`
	VLogSize int64 `json:"vlog_bytes"`
}

// CollectStats counts keys and reports on-disk sizes.
func (c *Cache) CollectStats() (Stats, error) {
	var stats Stats
	stats.LSMBytes, stats.VLogSize = c.db.Size()

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			stats.Keys++
		}
		return nil
	})
	return stats, err
}

// SaveRaw writes raw bytes under key without JSON encoding. Used by the seed
// tool to restore exported payloads verbatim.
func (c *Cache) SaveRaw(key string, data []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
