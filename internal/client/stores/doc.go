// Package stores holds the in-memory client state shared by services and the
// CLI: the authentication state machine, the decrypted API key and ordered
// collections of server resources.
//
// Stores are safe for concurrent use. Subscribers are called synchronously
// after each change, outside the store lock, so they may read the store
// again.
package stores
