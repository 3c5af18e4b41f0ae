package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSubscriptions(t *testing.T) {
	client := newClient(NewWebSocketManager(), nil, "user-1")

	assert.False(t, client.subscribed("e1"))

	client.subscribe("e1")
	assert.True(t, client.subscribed("e1"))
	assert.False(t, client.subscribed("e2"))

	client.unsubscribe("e1")
	assert.False(t, client.subscribed("e1"))
}

func TestDispatchReachesSubscribers(t *testing.T) {
	manager := NewWebSocketManager()
	go manager.Run()
	defer manager.Stop()

	subscriber := newClient(manager, nil, "user-1")
	subscriber.subscribe("e1")
	bystander := newClient(manager, nil, "user-2")

	manager.register <- subscriber
	manager.register <- bystander

	manager.Publish("e1", "analysis_complete", map[string]string{"analysis_id": "a1"})

	select {
	case event := <-subscriber.send:
		assert.Equal(t, "analysis_complete", event.Type)
		assert.Equal(t, "e1", event.EssayID)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case event := <-bystander.send:
		t.Fatalf("bystander received event %v without a subscription", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	manager := NewWebSocketManager()
	// Run is intentionally not started, so the buffer fills.

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			manager.Publish("e1", "essay_updated", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full event buffer")
	}
}

func TestManagerCount(t *testing.T) {
	manager := NewWebSocketManager()
	go manager.Run()
	defer manager.Stop()

	client := newClient(manager, nil, "user-1")
	manager.register <- client

	require.Eventually(t, func() bool { return manager.Count() == 1 }, time.Second, 5*time.Millisecond)

	manager.unregister <- client
	require.Eventually(t, func() bool { return manager.Count() == 0 }, time.Second, 5*time.Millisecond)
}
