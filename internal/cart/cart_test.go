package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/session"
	"github.com/techstore/techstore/internal/store"
)

func newTestCart(t *testing.T) *Service {
	t.Helper()

	st := store.NewMemStore()
	sessions := &session.Service{Store: st, Events: events.Nop{}}
	cat := &catalog.Service{Store: st, Events: events.Nop{}}
	return &Service{Store: st, Sessions: sessions, Catalog: cat, Events: events.Nop{}}
}

func loginTestUser(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Sessions.SignUp(context.Background(), "shopper@x.com", "pw", "")
	require.NoError(t, err)
}

func seedProduct(t *testing.T, svc *Service, id string, price float64) {
	t.Helper()
	ctx := context.Background()
	products, err := svc.Catalog.List(ctx)
	require.NoError(t, err)
	products = append(products, models.Product{ID: id, Name: "p" + id, Price: price})
	require.NoError(t, svc.Store.Save(ctx, store.KeyProducts, products))
}

func TestAdd_RequiresSession(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1")
	assert.ErrorIs(t, err, ErrAuthRequired)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdd_IncrementsExistingEntry(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)
	seedProduct(t, svc, "1", 10)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)
	items, err := svc.Add(ctx, "1")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(20), total)
}

func TestAdd_NeverDuplicatesProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	ops := []string{"1", "2", "1", "3", "2", "1"}
	for _, id := range ops {
		_, err := svc.Add(ctx, id)
		require.NoError(t, err)
	}

	items, err := svc.Items(ctx)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ProductID], "duplicate entry for %s", it.ProductID)
		seen[it.ProductID] = true
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
	assert.Len(t, items, 3)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)

	items, err := svc.SetQuantity(ctx, "1", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestSetQuantity_ZeroRemovesEntry(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "1")
	require.NoError(t, err)

	items, err := svc.SetQuantity(ctx, "1", 0)
	require.NoError(t, err)
	assert.Empty(t, items, "entry must be removed, not set to 0")

	items, err = svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)

	items, err := svc.SetQuantity(ctx, "other", 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "2")
	require.NoError(t, err)

	items, err := svc.Remove(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)
}

func TestTotal_DanglingReferenceContributesZero(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)
	seedProduct(t, svc, "1", 10)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "1")
	require.NoError(t, err)

	// delete the product while the cart still references it
	require.NoError(t, svc.Catalog.Delete(ctx, "1"))

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestTotal_MixedCart(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)
	seedProduct(t, svc, "1", 10)
	seedProduct(t, svc, "2", 2.5)

	for _, id := range []string{"1", "2", "2", "ghost"} {
		_, err := svc.Add(ctx, id)
		require.NoError(t, err)
	}

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(15), total)
}

func TestClear(t *testing.T) {
	t.Parallel()

	svc := newTestCart(t)
	ctx := context.Background()
	loginTestUser(t, svc)

	_, err := svc.Add(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
