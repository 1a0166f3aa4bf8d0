package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/techstore/internal/models"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	g, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	return map[string]Store{
		"gorm":   g,
		"memory": NewMemStore(),
	}
}

func TestStore_LoadAbsentKey(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			var users []models.User
			err := s.Load(ctx, KeyUsers, &users)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			in := []models.CartItem{
				{ProductID: "1", Quantity: 2},
				{ProductID: "7", Quantity: 1},
			}
			require.NoError(t, s.Save(ctx, KeyCart, in))

			var out []models.CartItem
			require.NoError(t, s.Load(ctx, KeyCart, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, KeyCart, []models.CartItem{{ProductID: "1", Quantity: 1}}))
			require.NoError(t, s.Save(ctx, KeyCart, []models.CartItem{}))

			var out []models.CartItem
			require.NoError(t, s.Load(ctx, KeyCart, &out))
			assert.Empty(t, out)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			u := models.User{ID: "u1", Email: "a@x.com"}
			require.NoError(t, s.Save(ctx, KeyCurrentUser, u))
			require.NoError(t, s.Delete(ctx, KeyCurrentUser))

			var out models.User
			assert.ErrorIs(t, s.Load(ctx, KeyCurrentUser, &out), ErrNotFound)

			// deleting an absent key is a no-op
			assert.NoError(t, s.Delete(ctx, KeyCurrentUser))
		})
	}
}
