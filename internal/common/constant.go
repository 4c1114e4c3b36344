// Package common contains constants shared by the transport and the
// session layers.
package common

// HTTP header names and values set on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeJSON         = "application/json"
)

// Durable storage keys. The token and the serialized user record are
// kept as two entries of the metadata table.
const (
	TokenStorageKey = "token"
	UserStorageKey  = "auth-storage"
)
