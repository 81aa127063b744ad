package ports

import (
	"context"
	"time"

	"github.com/ByteAtATime/firebase-auth-extension/core"
)

// Authority is the issuing authority for access credentials. It mints
// credentials for verified addresses and is the only party able to
// validate them. One instance is constructed at process startup and
// injected into everything that needs it.
type Authority interface {
	// Issue mints a credential bound to the given address, valid for ttl.
	Issue(ctx context.Context, address string, ttl time.Duration) (core.Credential, error)

	// Verify validates a token and returns the identity it asserts.
	// Any failure (expired, tampered, malformed, wrong audience) yields
	// an error wrapping core.ErrInvalidCredential.
	Verify(ctx context.Context, token string) (*core.Identity, error)
}
