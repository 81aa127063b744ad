package ports

import (
	"context"
	"time"
)

// Store interface for credential revocation
type Store interface {
	Revoke(ctx context.Context, credentialID string, expiry time.Duration) error
	IsRevoked(ctx context.Context, credentialID string) (bool, error)
}
