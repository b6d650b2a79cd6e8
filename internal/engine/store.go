// Package engine provides the key/value slots that stand in for browser
// session storage: an in-memory store with optional on-disk persistence.
package engine

import "errors"

// ErrKeyNotFound is returned when a requested slot is empty.
var ErrKeyNotFound = errors.New("key not found")

// Storage is a flat string slot store. Values are opaque to the store;
// callers own their encoding.
type Storage interface {
	// GetItem returns the raw value stored under key.
	GetItem(key string) (string, error)
	// SetItem replaces the value stored under key.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error
}
