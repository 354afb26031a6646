package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewHub(log)
}

func TestBroadcastDeliversToSubscribedChannel(t *testing.T) {
	hub := testHub(t)
	userID := uuid.New()

	client := hub.NewClient(userID)
	hub.AddChannel(client, UserChannel(userID))
	defer hub.CloseClient(client)

	hub.Broadcast(Message{Channel: UserChannel(userID), Event: "pantry.updated", Data: "x"})

	select {
	case msg := <-client.Outbound:
		if msg.Event != "pantry.updated" {
			t.Fatalf("event = %q, want pantry.updated", msg.Event)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestBroadcastSkipsOtherChannels(t *testing.T) {
	hub := testHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, UserChannel(client.UserID))
	defer hub.CloseClient(client)

	hub.Broadcast(Message{Channel: UserChannel(uuid.New()), Event: "waste.logged"})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected delivery: %+v", msg)
	default:
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := testHub(t)
	userID := uuid.New()
	client := hub.NewClient(userID)
	hub.AddChannel(client, UserChannel(userID))
	defer hub.CloseClient(client)

	for i := 0; i < cap(client.Outbound)+5; i++ {
		hub.Broadcast(Message{Channel: UserChannel(userID), Event: "pantry.updated"})
	}
	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("buffered = %d, want %d", got, cap(client.Outbound))
	}
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	hub := testHub(t)
	userID := uuid.New()
	client := hub.NewClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	hub.RemoveClient(client)
	hub.Broadcast(Message{Channel: UserChannel(userID), Event: "pantry.updated"})

	if got := len(client.Outbound); got != 0 {
		t.Fatalf("buffered = %d after removal, want 0", got)
	}
}
