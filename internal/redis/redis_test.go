package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
)

func newClient(t *testing.T) *goredis.Client {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, newClient(t))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(ctx, "client:a:subscribedMasjids")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, kv.SetJSON(ctx, kv.Scope(store, "a"), "subscribedMasjids", []string{"1"}))

	var ids []string
	found, err := kv.GetJSON(ctx, kv.Scope(store, "a"), "subscribedMasjids", &ids)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"1"}, ids)

	require.NoError(t, store.Delete(ctx, "client:a:subscribedMasjids"))
	_, err = store.Get(ctx, "client:a:subscribedMasjids")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStoreNotifiesOtherInstances(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)

	first, err := NewStore(ctx, client)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewStore(ctx, client)
	require.NoError(t, err)
	defer second.Close()

	changed := make(chan string, 1)
	second.Watch("client:a:savedLocations", func(key string) { changed <- key })

	require.NoError(t, first.Set(ctx, "client:a:savedLocations", []byte("[]")))

	select {
	case key := <-changed:
		assert.Equal(t, "client:a:savedLocations", key)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestRelayDeliversPublishedFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := newClient(t)

	relay := NewRelay(client, "")
	got := make(chan []byte, 1)
	require.NoError(t, relay.Listen(ctx, func(p []byte) { got <- p }))

	require.NoError(t, NewRelay(client, "").Publish(ctx, []byte(`{"topic":"x"}`)))

	select {
	case p := <-got:
		assert.JSONEq(t, `{"topic":"x"}`, string(p))
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for relayed frame")
	}
}
