package ws

import (
	"encoding/json"
	"testing"
)

func testClient(boardID string) *Client {
	return &Client{
		UserID:  "u1",
		BoardID: boardID,
		Send:    make(chan []byte, 4),
	}
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	h := NewHub()
	c := testClient("b1")

	h.Subscribe(c)
	if got := h.Subscribers("b1"); got != 1 {
		t.Fatalf("Subscribers = %d; want 1", got)
	}

	h.Unsubscribe(c)
	if got := h.Subscribers("b1"); got != 0 {
		t.Fatalf("Subscribers after unsubscribe = %d; want 0", got)
	}

	// idempotent
	h.Unsubscribe(c)
}

func TestHubBroadcastRouting(t *testing.T) {
	h := NewHub()
	a := testClient("b1")
	b := testClient("b1")
	other := testClient("b2")

	h.Subscribe(a)
	h.Subscribe(b)
	h.Subscribe(other)

	h.Broadcast(Event{Type: EventTaskCreated, Board: "b1", Payload: map[string]string{"id": "t1"}})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var e Event
			if err := json.Unmarshal(raw, &e); err != nil {
				t.Fatalf("unmarshal event: %v", err)
			}
			if e.Type != EventTaskCreated || e.Board != "b1" {
				t.Fatalf("event = %+v", e)
			}
		default:
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("event leaked to another board's subscriber")
	default:
	}
}

func TestHubBroadcastSkipsFullClient(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: "u1", BoardID: "b1", Send: make(chan []byte, 1)}
	h.Subscribe(c)

	// fill the buffer; further broadcasts must not block
	h.Broadcast(Event{Type: EventTaskUpdated, Board: "b1"})
	h.Broadcast(Event{Type: EventTaskUpdated, Board: "b1"})
	h.Broadcast(Event{Type: EventTaskUpdated, Board: "b1"})

	if got := len(c.Send); got != 1 {
		t.Fatalf("buffered = %d; want 1", got)
	}
}

func TestHubBroadcastEmptyRoom(t *testing.T) {
	h := NewHub()
	// no subscribers for the board; must not panic
	h.Broadcast(Event{Type: EventBoardUpdated, Board: "nobody"})
}
