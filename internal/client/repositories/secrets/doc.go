// Package secrets provides the client-side persistence layer for encrypted
// secrets such as the user's LLM API key.
//
// # Data Model
//
// Each row maps a name to an opaque blob produced by cryptox
// (base64(nonce || ciphertext || tag)). The repository never sees plaintext
// and does not interpret blobs. Callers that fail to decrypt a blob decide
// what to do with it, typically Clear the table.
//
// # Concurrency
//
// SQLiteRepository is safe for concurrent use when backed by *sql.DB. When
// bound to *sql.Tx (see dbx.WithTx), normal transaction scoping applies.
//
// Typical Usage
//
//	repo := secrets.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, common.APIKeySecretName, blob)
//	blob, _ := repo.Get(ctx, common.APIKeySecretName)
//	_ = repo.Delete(ctx, common.APIKeySecretName)
package secrets
