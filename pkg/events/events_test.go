package events

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()

	broker.Publish(&Event{Kind: "service", Action: ActionCreated, ObjectID: "svc-1", Version: 1})

	select {
	case event := <-sub:
		if event.ObjectID != "svc-1" {
			t.Errorf("expected svc-1, got %s", event.ObjectID)
		}
		if event.ID == "" {
			t.Error("event ID should be filled in")
		}
		if event.Timestamp.IsZero() {
			t.Error("event timestamp should be filled in")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	if broker.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", broker.SubscriberCount())
	}

	broker.Unsubscribe(sub)
	if broker.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", broker.SubscriberCount())
	}

	if _, ok := <-sub; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}
