// Package storage is the local key-value persistence of the client.
//
// Values are opaque blobs, written and read whole. Two implementations are
// provided: SQLiteStore, durable across restarts, and MemoryStore, used in
// tests and for throwaway sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// Well-known keys.
const (
	KeyUsers        = "users"
	KeyLoggedInUser = "loggedInUser"
)

// ErrMalformed reports a stored value that is not valid JSON for the
// requested type. Callers recover from it by starting with an empty value.
var ErrMalformed = errors.New("malformed stored value")

// UpdateFunc receives the current value (nil when absent) and returns the
// value to store. Returning nil deletes the key.
type UpdateFunc func(old []byte) ([]byte, error)

// Store is a key-value store over whole blobs.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error. Update runs a read-modify-write of a single key atomically with
// respect to other Update calls on the same store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// DecodeJSON unmarshals raw into v. A nil raw leaves v untouched and
// returns nil; bad JSON returns ErrMalformed.
func DecodeJSON(raw []byte, v any) error {
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	return nil
}
