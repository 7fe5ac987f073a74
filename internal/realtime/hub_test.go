package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(id string) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg := <-c.Send:
		var event Event
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("failed to unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("client did not receive event")
		return Event{}
	}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	client := newTestClient("client-1")

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.ClientCount())
	}

	// Unregister closes the send channel
	if _, open := <-client.Send; open {
		t.Fatal("expected send channel to be closed")
	}

	// A second unregister is a no-op
	hub.Unregister(client)
}

func TestHub_EmitReachesAllClients(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	hub.Register(c1)
	hub.Register(c2)

	hub.Emit("newCase", map[string]string{"id": "case-1"})

	for _, c := range []*Client{c1, c2} {
		event := receiveEvent(t, c)
		if event.Event != "newCase" {
			t.Fatalf("expected newCase event, got %s", event.Event)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected event timestamp to be set")
		}
	}
}

func TestHub_EmitToRoom(t *testing.T) {
	hub := NewHub()
	operator := newTestClient("operator")
	bystander := newTestClient("bystander")
	hub.Register(operator)
	hub.Register(bystander)

	hub.ProcessMessage(operator, ClientMessage{Action: "joinRoom", Room: "government"})

	if hub.RoomCount("government") != 1 {
		t.Fatalf("expected 1 client in government room, got %d", hub.RoomCount("government"))
	}

	hub.EmitTo("government", "newEmergency", map[string]string{"id": "em-1"})

	event := receiveEvent(t, operator)
	if event.Event != "newEmergency" {
		t.Fatalf("expected newEmergency event, got %s", event.Event)
	}

	select {
	case <-bystander.Send:
		t.Fatal("client outside the room should not have received the event")
	default:
		// expected
	}
}

func TestHub_EmitToUnknownRoomIsSilent(t *testing.T) {
	hub := NewHub()
	client := newTestClient("c1")
	hub.Register(client)

	// No subscribers in the room; emission is dropped without error.
	hub.EmitTo("government", "newEmergency", nil)

	select {
	case <-client.Send:
		t.Fatal("unexpected event delivery")
	default:
	}
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := newTestClient("c1")
	hub.Register(client)

	hub.Join(client, "doctor")
	hub.Join(client, "doctor")

	if hub.RoomCount("doctor") != 1 {
		t.Fatalf("expected 1 client in doctor room, got %d", hub.RoomCount("doctor"))
	}
	if len(client.Rooms) != 1 {
		t.Fatalf("expected client to track 1 room, got %d", len(client.Rooms))
	}

	hub.EmitTo("doctor", "ping", nil)
	receiveEvent(t, client)
	select {
	case <-client.Send:
		t.Fatal("client received duplicate event after double join")
	default:
	}
}

func TestHub_LeaveRoom(t *testing.T) {
	hub := NewHub()
	client := newTestClient("c1")
	hub.Register(client)
	hub.Join(client, "doctor")

	hub.ProcessMessage(client, ClientMessage{Action: "leaveRoom", Room: "doctor"})

	if hub.RoomCount("doctor") != 0 {
		t.Fatalf("expected empty doctor room, got %d", hub.RoomCount("doctor"))
	}

	hub.EmitTo("doctor", "ping", nil)
	select {
	case <-client.Send:
		t.Fatal("client received event after leaving room")
	default:
	}
}

func TestHub_UnregisterRemovesFromRooms(t *testing.T) {
	hub := NewHub()
	client := newTestClient("c1")
	hub.Register(client)
	hub.Join(client, "government")

	hub.Unregister(client)

	if hub.RoomCount("government") != 0 {
		t.Fatalf("expected empty government room, got %d", hub.RoomCount("government"))
	}
}

func TestHub_SlowClientDoesNotBlockEmit(t *testing.T) {
	hub := NewHub()
	slow := &Client{ID: "slow", Send: make(chan []byte)} // unbuffered, never read
	ok := newTestClient("ok")
	hub.Register(slow)
	hub.Register(ok)

	done := make(chan struct{})
	go func() {
		hub.Emit("newCase", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a slow client")
	}

	receiveEvent(t, ok)
}
