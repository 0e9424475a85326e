package secrets

import (
	"context"
)

// Repository describes storage for encrypted named blobs.
type Repository interface {
	// Get returns the blob stored under name, or "" when there is none.
	Get(ctx context.Context, name string) (string, error)

	// Set inserts or replaces the blob stored under name.
	Set(ctx context.Context, name, blob string) error

	// Delete removes name. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	// Names lists stored names in lexical order.
	Names(ctx context.Context) ([]string, error)

	// Clear removes every secret.
	Clear(ctx context.Context) error
}
