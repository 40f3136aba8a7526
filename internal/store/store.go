// Package store holds the durable key/value slot the catalog is mirrored to.
//
// A Store keeps string values under string keys. The catalog uses exactly one
// key and overwrites its value on every mutation, so adapters only need
// point reads and writes. Adapter errors match model.ErrStorageUnavailable.
package store

import "context"

// Store is a durable key/value store.
type Store interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
