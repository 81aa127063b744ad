package ports

import "context"

// EventPublisher publishes events to notify other instances
type EventPublisher interface {
	PublishSignOut(ctx context.Context, address string, credentialID string) error
}
