package common

import "errors"

// Sentinel errors shared by the client layers. Match them with errors.Is.
var (
	ErrorNotFound = errors.New("not found")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrNoSession is returned by operations that need a signed-in user.
	ErrNoSession = errors.New("no active session")
	// ErrNotHydrated means the auth state was read before Restore finished.
	ErrNotHydrated = errors.New("session state not restored yet")

	ErrDecryption = errors.New("decryption failed")
	ErrEncryption = errors.New("encryption failed")
	ErrNoAPIKey   = errors.New("api key is not set")

	ErrValidation        = errors.New("validation error")
	ErrImmutableTemplate = errors.New("default templates cannot be modified")
)
