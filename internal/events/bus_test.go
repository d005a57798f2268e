package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, l *Listener) Event {
	t.Helper()
	select {
	case e := <-l.C:
		return e
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
	return Event{}
}

func TestBusDeliversByTopicAndClient(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	alice := bus.Subscribe("alice", TopicSubscriptionChanged)
	defer bus.Unsubscribe(alice)
	everyone := bus.Subscribe("")
	defer bus.Unsubscribe(everyone)

	require.NoError(t, bus.Emit(ctx, TopicSubscriptionChanged, "bob", SubscriptionChanged{MasjidID: "1", IsSubscribed: true}))
	require.NoError(t, bus.Emit(ctx, TopicSubscriptionChanged, "alice", SubscriptionChanged{MasjidID: "2", IsSubscribed: true}))

	got := receive(t, alice)
	var payload SubscriptionChanged
	require.NoError(t, got.Decode(&payload))
	assert.Equal(t, "2", payload.MasjidID)
	assert.True(t, payload.IsSubscribed)

	assert.Equal(t, "bob", receive(t, everyone).ClientID)
	assert.Equal(t, "alice", receive(t, everyone).ClientID)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	l := bus.Subscribe("")
	bus.Unsubscribe(l)
	bus.Unsubscribe(l)

	_, ok := <-l.C
	assert.False(t, ok)
}

type loopRelay struct {
	mu      sync.Mutex
	sent    [][]byte
	deliver func([]byte)
}

func (r *loopRelay) Publish(_ context.Context, p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, p)
	return nil
}

func (r *loopRelay) Listen(_ context.Context, deliver func([]byte)) error {
	r.deliver = deliver
	return nil
}

func (r *loopRelay) Close() error { return nil }

func TestRelayFramesAndEchoSuppression(t *testing.T) {
	bus := NewBus()
	relay := &loopRelay{}
	require.NoError(t, bus.Attach(context.Background(), relay))

	l := bus.Subscribe("")
	defer bus.Unsubscribe(l)

	require.NoError(t, bus.Emit(context.Background(), TopicLocationsChanged, "a", LocationsChanged{LocationID: "x"}))
	receive(t, l)
	require.Len(t, relay.sent, 1)

	// our own frame coming back is ignored
	relay.deliver(relay.sent[0])
	select {
	case e := <-l.C:
		t.Fatalf("unexpected echo: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}

	remote, err := json.Marshal(Event{Topic: TopicAnnouncementPublished, Origin: "other", Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	relay.deliver(remote)
	assert.Equal(t, TopicAnnouncementPublished, receive(t, l).Topic)
}
