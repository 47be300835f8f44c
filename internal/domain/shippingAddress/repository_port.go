// internal/domain/shippingAddress/repository_port.go
package shippingAddress

import "context"

// Repository is a persistence port for ShippingAddress.
//
// Storage (Firestore):
// - collection: shippingAddresses
// - docId: auto-generated
type Repository interface {
	// GetByID returns ErrNotFound when no doc matches.
	GetByID(ctx context.Context, id string) (ShippingAddress, error)

	ListByUserID(ctx context.Context, userID string) ([]ShippingAddress, error)

	Create(ctx context.Context, a ShippingAddress) (ShippingAddress, error)

	Save(ctx context.Context, a ShippingAddress) (ShippingAddress, error)

	Delete(ctx context.Context, id string) error

	// UnsetDefaults clears isDefault on every address of userID except
	// excludeID (pass "" to clear all). Each clear is an independent
	// write; a brief two-defaults window under concurrent writers is
	// accepted.
	UnsetDefaults(ctx context.Context, userID, excludeID string) error
}
