// Package catalog holds the list of purchasable products. Admin handlers are
// the only writers; everyone reads.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/store"
	"github.com/techstore/techstore/internal/validate"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// Image substituted when a draft omits one.
const defaultImage = "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=400"

type Draft struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image"       validate:"omitempty,url"`
}

type Service struct {
	Store  store.Store
	Events events.Publisher
}

// Seed writes the sample product set on first run. An existing products
// document, even an empty one, is left alone.
func (s *Service) Seed(ctx context.Context) error {
	var existing []models.Product
	err := s.Store.Load(ctx, store.KeyProducts, &existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	sample := []models.Product{
		{
			ID:          "1",
			Name:        "Premium Laptop",
			Price:       1299,
			Description: "High-performance laptop for professionals",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Wireless Headphones",
			Price:       199,
			Description: "Noise-cancelling bluetooth headphones",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Smart Watch",
			Price:       299,
			Description: "Advanced fitness and health tracking",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
			CreatedAt:   now,
		},
	}

	if err := s.Store.Save(ctx, store.KeyProducts, sample); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("catalog_seeded", "count", len(sample))
	return nil
}

// List returns every product in insertion order.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.Store.Load(ctx, store.KeyProducts, &products); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

func (s *Service) Create(ctx context.Context, draft Draft) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if err := validate.Check(draft); err != nil {
		l.Warn("create_product_failed", "reason", "invalid draft", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	image := draft.Image
	if image == "" {
		image = defaultImage
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Price:       draft.Price,
		Description: draft.Description,
		Image:       image,
		CreatedAt:   time.Now().UTC(),
	}

	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	products = append(products, product)
	if err := s.Store.Save(ctx, store.KeyProducts, products); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicProductEvents, product.ID, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
		"price":     product.Price,
	})

	l.Info("product_created", "productID", product.ID)
	return &product, nil
}

// Delete removes the matching product. Absent ids are a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	removed := false
	for _, p := range products {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}

	if err := s.Store.Save(ctx, store.KeyProducts, kept); err != nil {
		return err
	}

	if removed {
		events.Emit(ctx, s.Events, events.TopicProductEvents, id, map[string]any{
			"type":      "product_deleted",
			"productID": id,
		})
		logging.FromContext(ctx).Info("product_deleted", "productID", id)
	}
	return nil
}
