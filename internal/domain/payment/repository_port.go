// internal/domain/payment/repository_port.go
package payment

import "context"

// Repository is a persistence port for Payment.
//
// Storage (Firestore):
// - collection: payments
// - docId: orderId (enforces the 1:1 pairing)
type Repository interface {
	// GetByOrderID returns ErrNotFound when no doc matches.
	GetByOrderID(ctx context.Context, orderID string) (Payment, error)

	// Create fails with ErrConflict when a payment already exists for
	// the order.
	Create(ctx context.Context, p Payment) (Payment, error)

	Save(ctx context.Context, p Payment) (Payment, error)
}
