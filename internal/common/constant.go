// Package common contains shared constants and sentinel errors used across
// Prompt Master client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request identifier for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// BearerPrefix is prepended to the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// APIKeySecretName is the row name of the encrypted LLM API key.
	APIKeySecretName = "api-key"

	// CryptoKeyMetadataName is the metadata key holding base64 key material.
	CryptoKeyMetadataName = "crypto_key"
)
