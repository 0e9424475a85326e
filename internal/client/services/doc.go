// Package services contains application services for the Prompt Master
// client. Services coordinate the in-memory stores, the REST client and the
// local persistence adapters; the stores themselves never persist anything.
//
// Fetches that depend on the session (templates, history, models) are
// refused with common.ErrNotHydrated until AuthService.Restore has run, and
// templates and history additionally require an authenticated session
// (common.ErrNoSession).
package services
