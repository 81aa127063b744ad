package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

// SignOutEvent notifies other instances that a credential was revoked
type SignOutEvent struct {
	Address      string `json:"address"`
	CredentialID string `json:"credential_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "auth.signout",
	}
}

// PublishSignOut publishes a sign-out event
func (p *WatermillPublisher) PublishSignOut(ctx context.Context, address string, credentialID string) error {
	event := SignOutEvent{
		Address:      address,
		CredentialID: credentialID,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(credentialID, payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
