// Package client contains client-side building blocks for Prompt Master.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the Prompt Master backend: auth, models, templates, history,
//     optimization and a health ping.
//  2. A concrete REST implementation (see HTTPClient) that injects the
//     bearer token of the current session, tags every request with an
//     X-Request-ID and maps HTTP status codes to errors. Requests are never
//     retried or queued.
//  3. Local persistence bootstrap utilities (OpenStore, InitDatabase,
//     RunMigrations) for the CLI, wiring an SQLite database, applying
//     embedded goose migrations and locking the data directory.
//
// # Error Handling
//
// Network failures surface as ErrUnavailable and HTTP 401 as
// ErrUnauthorized, both matched with errors.Is. Any other non-2xx response is
// an *APIError carrying the status and the server's detail message.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
