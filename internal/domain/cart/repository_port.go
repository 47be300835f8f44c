// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage (Firestore):
//   - collection: carts
//   - docId: userId
//   - TTL: configure on the "expiresAt" field; the domain refreshes it
//     on every mutation via touch().
type Repository interface {
	// GetByUserID returns (nil, nil) when the user has no cart yet;
	// the application layer creates one lazily.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Upsert saves the cart (create or update). Plain last-writer-wins;
	// no optimistic concurrency check.
	Upsert(ctx context.Context, c *Cart) error

	DeleteByUserID(ctx context.Context, userID string) error
}
