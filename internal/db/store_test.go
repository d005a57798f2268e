package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
)

func TestStoreIntegration(t *testing.T) {
	if err := InitTestDB("../../migrations"); err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	defer Close()

	ctx := context.Background()
	repo := kv.Scope(TestStore, "integration")

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "nothing-here")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("upsert and read", func(t *testing.T) {
		require.NoError(t, kv.SetJSON(ctx, repo, "subscribedMasjids", []string{"1"}))
		require.NoError(t, kv.SetJSON(ctx, repo, "subscribedMasjids", []string{"1", "4"}))

		var ids []string
		found, err := kv.GetJSON(ctx, repo, "subscribedMasjids", &ids)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"1", "4"}, ids)
	})

	t.Run("delete notifies watchers", func(t *testing.T) {
		called := false
		cancel := repo.Watch("subscribedMasjids", func(string) { called = true })
		defer cancel()

		require.NoError(t, repo.Delete(ctx, "subscribedMasjids"))
		assert.True(t, called)
	})
}
