// Package checkout turns the current cart into an immutable order record.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techstore/techstore/internal/cart"
	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/session"
	"github.com/techstore/techstore/internal/store"
	"github.com/techstore/techstore/internal/validate"
)

var (
	ErrValidation   = errors.New("validation")
	ErrEmptyCart    = errors.New("no items in cart")
	ErrAuthRequired = errors.New("login required")
)

type Form struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

type Service struct {
	Store    store.Store
	Cart     *cart.Service
	Catalog  *catalog.Service
	Sessions *session.Service
	Events   events.Publisher
}

// Submit validates the shipping form, snapshots the cart into a completed
// order and clears the cart. The total is always recomputed from the cart
// and the catalog; no caller-supplied figure is trusted. There is no payment
// step: once validation passes the order is "completed".
func (s *Service) Submit(ctx context.Context, form Form) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.submit")

	user, err := s.Sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		l.Warn("checkout_failed", "reason", "no active session")
		return nil, ErrAuthRequired
	}

	items, err := s.Cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		l.Warn("checkout_failed", "reason", "empty cart")
		return nil, ErrEmptyCart
	}

	if err := validate.Check(form); err != nil {
		l.Warn("checkout_failed", "reason", "invalid form", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	products, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	snapshot := make([]models.OrderProduct, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// dangling reference: keep the line, price it at zero
			p = models.Product{ID: it.ProductID}
		}
		total += p.Price * float64(it.Quantity)
		snapshot = append(snapshot, models.OrderProduct{Product: p, Quantity: it.Quantity})
	}

	order := models.Order{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Items:     items,
		Total:     total,
		CreatedAt: time.Now().UTC(),
		Status:    models.OrderStatusCompleted,
		CustomerInfo: &models.CustomerInfo{
			Name:    form.Name,
			Email:   form.Email,
			Phone:   form.Phone,
			Address: form.Address,
			City:    form.City,
			ZipCode: form.ZipCode,
		},
		Products: snapshot,
	}

	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	orders = append(orders, order)
	if err := s.Store.Save(ctx, store.KeyOrders, orders); err != nil {
		return nil, err
	}

	// Separate write from the order append; a crash in between leaves the
	// cart uncleared, which is the accepted storage model here.
	if err := s.Cart.Clear(ctx); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.Total,
	})

	l.Info("order_created", "orderID", order.ID, "total", order.Total)
	return &order, nil
}

// Orders returns every placed order, oldest first.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.Store.Load(ctx, store.KeyOrders, &orders); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return orders, nil
}

// OrdersFor filters the order list down to one user.
func (s *Service) OrdersFor(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}
