package services

import (
	"context"

	"github.com/google/uuid"
)

// Event names carried over the fanout bus and down SSE streams.
const (
	EventPantryUpdated = "pantry.updated"
	EventWasteLogged   = "waste.logged"
)

// EventPublisher is the write side of the realtime fanout. Publishing is
// best-effort from the services' point of view; failures are logged and
// never surface to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event string, userID uuid.UUID, payload any) error
}
