// Package sessions persists the encrypted authentication payload of the
// local user. The table holds at most one row.
package sessions

import "context"

// Repository stores the single session blob.
type Repository interface {
	// Load returns the stored blob, or "" when no session is persisted.
	Load(ctx context.Context) (string, error)
	// Save replaces the stored blob.
	Save(ctx context.Context, blob string) error
	// Delete removes the stored blob. It is a no-op when nothing is stored.
	Delete(ctx context.Context) error
}
