// Package cli provides the interactive Prompt Master command-line client.
//
// It wires configuration, the local store, the REST client, stores and
// services, then runs a REPL. Typical flow: restore the persisted session
// and API key, ping the server, and execute user commands.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - API key management (stored encrypted on disk)
//   - Template browsing and authoring
//   - Prompt optimization
//   - History search and export (local file or S3 bucket)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
