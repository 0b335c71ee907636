package events

import "testing"

// TestPublishSubscribe verifies subscribers receive published events.
func TestPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(EventQueueChanged, map[string]interface{}{"pending": 1})

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != EventQueueChanged {
		t.Errorf("Type = %q, want queue.changed", got[0].Type)
	}
	if got[0].Data["pending"] != 1 {
		t.Errorf("Data[pending] = %v, want 1", got[0].Data["pending"])
	}
	if got[0].Timestamp == 0 {
		t.Error("expected Timestamp to be set")
	}
}

// TestUnsubscribe verifies a cancelled subscription receives nothing more.
func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	cancel := bus.Subscribe(func(Event) { count++ })

	bus.Publish(EventSyncStarted, nil)
	cancel()
	bus.Publish(EventSyncCompleted, nil)

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

// TestMultipleSubscribers verifies fan-out to all subscribers.
func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	a, b := 0, 0
	bus.Subscribe(func(Event) { a++ })
	bus.Subscribe(func(Event) { b++ })

	bus.Publish(EventQueueChanged, nil)

	if a != 1 || b != 1 {
		t.Errorf("deliveries = (%d, %d), want (1, 1)", a, b)
	}
}
