// Package storage defines the persistence boundary the game core writes
// through. State is stored as opaque blobs under string keys; the core
// never sees where the bytes live. Adapters may fail, and callers are
// expected to treat failure as a degraded mode rather than a crash.
package storage

import "errors"

// ErrUnavailable reports that the backing store cannot be read or
// written right now. Callers degrade to memory-only operation.
var ErrUnavailable = errors.New("storage unavailable")

// ErrNotFound reports that no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

type Blobs interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Save writes the blob under key, replacing any previous value.
	Save(key string, value []byte) error
	// Remove deletes the blob under key. Removing a missing key is not
	// an error.
	Remove(key string) error
}
