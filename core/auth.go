package core

import "time"

// Credential is a time-bounded bearer artifact asserting a verified
// identity. The server keeps no copy of it; it retains only the ability
// to validate the token through the issuing authority.
type Credential struct {
	ID        string    // Unique credential identifier (JWT jti)
	Address   string    // Ethereum address the credential is bound to
	Token     string    // Signed token string handed to the client
	IssuedAt  time.Time // When the credential was minted
	ExpiresAt time.Time // When the credential stops being accepted
}

// Identity is the verified result of validating a credential. It exists
// only for the duration of one request.
type Identity struct {
	Address      string    // Ethereum address recovered from the credential
	CredentialID string    // ID of the credential that proved the identity
	ExpiresAt    time.Time // Expiry of that credential
}
