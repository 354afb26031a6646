package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

// RemoteBus is the cross-instance leg of the fanout (Redis pub/sub in
// production). When nil, messages go straight to the local hub.
type RemoteBus interface {
	Publish(ctx context.Context, msg Message) error
}

// Publisher is the single write entry point for realtime events. With a
// remote bus configured, every publish round-trips through it so all
// instances, this one included, deliver via their forwarder.
type Publisher struct {
	hub *Hub
	bus RemoteBus
	log *logger.Logger
}

func NewPublisher(hub *Hub, bus RemoteBus, log *logger.Logger) *Publisher {
	return &Publisher{hub: hub, bus: bus, log: log.With("component", "RealtimePublisher")}
}

func (p *Publisher) Publish(ctx context.Context, event string, userID uuid.UUID, payload any) error {
	msg := Message{
		Channel: UserChannel(userID),
		Event:   event,
		Data:    payload,
	}
	if p.bus != nil {
		return p.bus.Publish(ctx, msg)
	}
	p.hub.Broadcast(msg)
	return nil
}
