package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte(`"v"`)))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(v))

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var ids []string
	found, err := GetJSON(ctx, m, "subscribedMasjids", &ids)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, m, "subscribedMasjids", []string{"1", "3"}))
	found, err = GetJSON(ctx, m, "subscribedMasjids", &ids)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestGetJSONMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "savedLocations", []byte("{not json")))

	var out []string
	found, err := GetJSON(ctx, m, "savedLocations", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScopeIsolatesClients(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := Scope(m, "alice")
	b := Scope(m, "bob")

	require.NoError(t, SetJSON(ctx, a, "subscribedMasjids", []string{"2"}))

	var ids []string
	found, err := GetJSON(ctx, b, "subscribedMasjids", &ids)
	require.NoError(t, err)
	assert.False(t, found)

	raw, err := m.Get(ctx, "client:alice:subscribedMasjids")
	require.NoError(t, err)
	assert.JSONEq(t, `["2"]`, string(raw))
}

func TestWatchNotifiesAndCancels(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	scopedRepo := Scope(m, "alice")

	var seen []string
	cancel := scopedRepo.Watch("savedLocations", func(key string) { seen = append(seen, key) })

	require.NoError(t, scopedRepo.Set(ctx, "savedLocations", []byte("[]")))
	require.NoError(t, Scope(m, "bob").Set(ctx, "savedLocations", []byte("[]")))
	cancel()
	require.NoError(t, scopedRepo.Set(ctx, "savedLocations", []byte("[]")))

	assert.Equal(t, []string{"savedLocations"}, seen)
}
