package storage

import "github.com/pkg/errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a small persistent key-value store for string preferences.
// Writes are staged in memory and become durable on Synchronize.
type Store interface {
	// Get returns the value stored under key, including staged writes.
	Get(key string) (string, error)

	// Set stages value under key.
	Set(key string, value string)

	// Remove stages the deletion of keys.
	Remove(keys ...string)

	// Synchronize flushes staged writes to disk.
	Synchronize() error

	// Close flushes and releases the underlying database.
	Close() error
}
