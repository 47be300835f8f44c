// internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"
)

// Repository is a persistence port for Order.
//
// Storage (Firestore):
// - collection: orders
// - docId: auto-generated; orderNumber is a separate unique field
type Repository interface {
	// GetByID returns ErrNotFound when no doc matches.
	GetByID(ctx context.Context, id string) (Order, error)

	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]Order, error)

	// ListAll returns every order, newest first (admin surface).
	ListAll(ctx context.Context) ([]Order, error)

	// ListByCreatedRange filters on createdAt. Zero bounds are open.
	ListByCreatedRange(ctx context.Context, from, to time.Time) ([]Order, error)

	// Create fails with ErrConflict when the doc (or the orderNumber
	// uniqueness marker) already exists.
	Create(ctx context.Context, o Order) (Order, error)

	// Save overwrites the doc (status transitions).
	Save(ctx context.Context, o Order) (Order, error)

	Count(ctx context.Context) (int, error)
}
