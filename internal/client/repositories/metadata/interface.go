// Package metadata stores small key/value records of the local client store,
// such as the base64 key material used by cryptox.
package metadata

import (
	"context"
)

// Repository is the metadata table.
type Repository interface {
	// Lookup returns the value of key and whether the key exists.
	Lookup(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Keys returns the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
