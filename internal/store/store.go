// Package store persists named JSON documents. Each document is a whole
// collection (the user list, the product list, ...) written back in full on
// every mutation. There is no cross-key transaction boundary: callers that
// touch two documents can observe one write land without the other.
package store

import (
	"context"
	"errors"
)

// Document keys. The names are shared with the storefront frontend and must
// not change.
const (
	KeyUsers       = "users"
	KeyProducts    = "products"
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeyCurrentUser = "currentUser"
)

var ErrNotFound = errors.New("not found")

type Store interface {
	// Load unmarshals the document stored under key into "into".
	// Returns ErrNotFound when the key is absent.
	Load(ctx context.Context, key string, into any) error

	// Save marshals value and writes it under key, replacing any previous
	// document.
	Save(ctx context.Context, key string, value any) error

	// Delete removes the document under key. Absent keys are a no-op.
	Delete(ctx context.Context, key string) error
}
