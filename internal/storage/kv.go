// ABOUTME: Key-value storage port used by the fitness log repository.
// ABOUTME: Each backend stores opaque serialized blobs under fixed keys.
package storage

import "errors"

// ErrNotFound is returned by KV.Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the storage port. Implementations must be safe for use by a single
// session; calls are synchronous and each call is atomic.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}
