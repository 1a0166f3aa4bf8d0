// Package admin composes the catalog, the user list and the order history
// into the management surface. It owns no state of its own.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/techstore/techstore/internal/catalog"
	"github.com/techstore/techstore/internal/checkout"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/session"
	"github.com/techstore/techstore/internal/validate"
)

const (
	unknownUser    = "Unknown User"
	unknownProduct = "Unknown Product"
)

type NewUser struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OrderLine is one purchased product resolved by id, with fallbacks for
// references that no longer resolve.
type OrderLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type OrderSummary struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	Lines        []OrderLine `json:"lines"`
}

type Service struct {
	Catalog  *catalog.Service
	Sessions *session.Service
	Checkout *checkout.Service
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Sessions.Users(ctx)
}

// CreateUser applies the same validation and uniqueness rules as sign-up but
// leaves the current session untouched.
func (s *Service) CreateUser(ctx context.Context, req NewUser) (*models.User, error) {
	if err := validate.Check(req); err != nil {
		return nil, fmt.Errorf("%w: %s", session.ErrValidation, err)
	}
	return s.Sessions.CreateUser(ctx, req.Email, req.Password, req.Name)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.Sessions.DeleteUser(ctx, id)
}

// OrderSummaries joins the order list with customer and product names for
// the read-only admin view. Dangling references get placeholder names.
func (s *Service) OrderSummaries(ctx context.Context) ([]OrderSummary, error) {
	orders, err := s.Checkout.Orders(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Sessions.Users(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		name, ok := userNames[o.UserID]
		if !ok {
			name = unknownUser
		}

		lines := make([]OrderLine, 0, len(o.Items))
		for _, it := range o.Items {
			line := OrderLine{
				ProductID:   it.ProductID,
				ProductName: unknownProduct,
				Quantity:    it.Quantity,
			}
			if p, ok := byID[it.ProductID]; ok {
				line.ProductName = p.Name
				line.Price = p.Price
			}
			lines = append(lines, line)
		}

		summaries = append(summaries, OrderSummary{
			ID:           o.ID,
			CustomerName: name,
			Total:        o.Total,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
			Lines:        lines,
		})
	}
	return summaries, nil
}
