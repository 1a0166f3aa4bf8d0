// Package cart implements the pending selection of product+quantity pairs.
// Invariants: at most one entry per product, quantities always >= 1. Every
// mutation writes the whole cart back to the store.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/session"
	"github.com/techstore/techstore/internal/store"
)

var (
	ErrAuthRequired = errors.New("login required")
	ErrValidation   = errors.New("validation")
)

type Service struct {
	Store    store.Store
	Sessions *session.Service
	Catalog  *catalog.Service
	Events   events.Publisher
}

func (s *Service) Items(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.Store.Load(ctx, store.KeyCart, &items); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return items, nil
}

// Add puts one more unit of the product in the cart, inserting a quantity-1
// entry on first add. Adding requires an active session.
func (s *Service) Add(ctx context.Context, productID string) ([]models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if productID == "" {
		return nil, fmt.Errorf("%w: product id required", ErrValidation)
	}

	user, err := s.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		l.Warn("add_to_cart_failed", "reason", "no active session")
		return nil, ErrAuthRequired
	}

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := s.Store.Save(ctx, store.KeyCart, items); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicCartEvents, user.ID, map[string]any{
		"type":      "cart_item_added",
		"userID":    user.ID,
		"productID": productID,
	})
	return items, nil
}

// SetQuantity sets the entry's quantity, removing the entry entirely when
// n <= 0. Products not already in the cart are left alone.
func (s *Service) SetQuantity(ctx context.Context, productID string, n int) ([]models.CartItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
			continue
		}
		changed = true
		if n <= 0 {
			continue
		}
		it.Quantity = n
		kept = append(kept, it)
	}

	if !changed {
		return kept, nil
	}

	if err := s.Store.Save(ctx, store.KeyCart, kept); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicCartEvents, productID, map[string]any{
		"type":      "cart_quantity_set",
		"productID": productID,
		"quantity":  n,
	})
	return kept, nil
}

// Remove drops the product from the cart regardless of quantity.
func (s *Service) Remove(ctx context.Context, productID string) ([]models.CartItem, error) {
	return s.SetQuantity(ctx, productID, 0)
}

// Total prices the cart against the current catalog. Entries whose product
// no longer exists contribute zero rather than failing.
func (s *Service) Total(ctx context.Context) (float64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	products, err := s.Catalog.List(ctx)
	if err != nil {
		return 0, err
	}

	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	var total float64
	for _, it := range items {
		total += prices[it.ProductID] * float64(it.Quantity)
	}
	return total, nil
}

// Clear empties the cart, e.g. after a completed checkout.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.Store.Save(ctx, store.KeyCart, []models.CartItem{}); err != nil {
		return err
	}
	events.Emit(ctx, s.Events, events.TopicCartEvents, "cart", map[string]any{
		"type": "cart_cleared",
	})
	return nil
}
